package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/your-org/boutique-storefront/internal/pkg/logger"
)

// RateLimiter counts requests per client IP in fixed one-minute windows shared
// through Redis. While Redis is unreachable each instance falls back to a local
// token bucket with the same budget.
type RateLimiter struct {
	name      string
	perMinute int
	burst     int
	redis     *redis.Client

	mu    sync.Mutex
	local map[string]*rate.Limiter
}

// NewRateLimiter creates a limiter allowing perMinute requests per IP; name
// separates the counters of different tiers
func NewRateLimiter(name string, perMinute, burst int, redisClient *redis.Client) *RateLimiter {
	if burst <= 0 {
		burst = perMinute
	}
	return &RateLimiter{
		name:      name,
		perMinute: perMinute,
		burst:     burst,
		redis:     redisClient,
		local:     make(map[string]*rate.Limiter),
	}
}

// Middleware enforces the limit
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		allowed, remaining := l.allow(c.Request.Context(), clientIP)

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.perMinute))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests. Please slow down and try again shortly.",
				"retry_after": 60,
			})
			return
		}

		c.Next()
	}
}

func (l *RateLimiter) allow(ctx context.Context, clientIP string) (bool, int) {
	if l.redis != nil {
		count, err := l.incr(ctx, clientIP)
		if err == nil {
			remaining := l.perMinute - int(count)
			if remaining < 0 {
				remaining = 0
			}
			return int(count) <= l.perMinute, remaining
		}
		logger.FromContext(ctx).WithError(err).Warn("Rate limit store unavailable, using local limiter")
	}

	limiter := l.localLimiter(clientIP)
	if !limiter.Allow() {
		return false, 0
	}
	return true, int(limiter.Tokens())
}

func (l *RateLimiter) incr(ctx context.Context, clientIP string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	key := fmt.Sprintf("rate_limit:%s:%s", l.name, clientIP)

	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	// first hit opens the window
	if count == 1 {
		if err := l.redis.Expire(ctx, key, time.Minute).Err(); err != nil {
			return 0, err
		}
	}
	return count, nil
}

func (l *RateLimiter) localLimiter(clientIP string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.local[clientIP]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMinute)), l.burst)
		l.local[clientIP] = limiter
	}
	return limiter
}

// RateLimit is a shorthand for NewRateLimiter(...).Middleware()
func RateLimit(name string, perMinute, burst int, redisClient *redis.Client) gin.HandlerFunc {
	return NewRateLimiter(name, perMinute, burst, redisClient).Middleware()
}
