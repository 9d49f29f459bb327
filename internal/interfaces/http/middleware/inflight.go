package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/boutique-storefront/internal/pkg/apperr"
	"github.com/your-org/boutique-storefront/internal/pkg/logger"
)

// MsgRequestInProgress is returned to a duplicate submission
const MsgRequestInProgress = "A request is already in progress"

// Locker is the part of the Redis client the in-flight guard needs
type Locker interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
}

// InFlightGuard rejects a mutating request while an identical one (same shopper,
// method and path) is still being served. Redis errors let the request through.
func InFlightGuard(locks Locker, cookieName string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case "GET", "HEAD", "OPTIONS":
			c.Next()
			return
		}

		key := inFlightKey(c, cookieName)
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		acquired, err := locks.SetNX(ctx, key, c.GetString("request_id"), ttl)
		cancel()

		if err != nil {
			logger.FromContext(c.Request.Context()).WithError(err).Warn("In-flight guard unavailable")
			c.Next()
			return
		}
		if !acquired {
			AbortWithError(c, apperr.Conflict(MsgRequestInProgress))
			return
		}

		defer func() {
			// release even when the request context is already done
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := locks.Del(ctx, key); err != nil {
				logger.FromContext(c.Request.Context()).WithError(err).Warn("Failed to release in-flight lock")
			}
		}()

		c.Next()
	}
}

func inFlightKey(c *gin.Context, cookieName string) string {
	who, err := c.Cookie(cookieName)
	if err != nil || who == "" {
		who = "ip:" + c.ClientIP()
	}
	sum := sha256.Sum256([]byte(who + "|" + c.Request.Method + "|" + c.Request.URL.Path))
	return "inflight:" + hex.EncodeToString(sum[:])
}
