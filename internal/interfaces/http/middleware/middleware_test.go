package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/boutique-storefront/internal/config"
	"github.com/your-org/boutique-storefront/internal/infrastructure/backend"
	redisdb "github.com/your-org/boutique-storefront/internal/infrastructure/database/redis"
	"github.com/your-org/boutique-storefront/internal/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSession(t *testing.T) {
	router := gin.New()
	router.Use(Session("JSESSIONID"))
	router.GET("/api/v1/echo", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"session": backend.SessionFrom(c.Request.Context()), "has": HasSession(c)})
	})
	router.GET("/api/v1/customer/orders", RequireSession(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/echo", nil)
	req.AddCookie(&http.Cookie{Name: "JSESSIONID", Value: "opaque-value"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "opaque-value", decode(t, w)["session"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/customer/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode(t, w)
	assert.Equal(t, "/login?redirect=%2Fcustomer%2Forders", body["redirect"])
	assert.Equal(t, "unauthorized", body["kind"])
}

func TestLoginRedirect(t *testing.T) {
	assert.Equal(t, "/login?redirect=%2Fcheckout%2Fpayment", LoginRedirect("/api/v1/checkout/payment"))
	assert.Equal(t, "/login?redirect=%2F", LoginRedirect("/api/v1"))
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, logger.RequestIDFrom(c.Request.Context()))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	incoming := "6f1c2f5e-8a7d-4c1e-9a55-0d2b7e4c9f10"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	t.Run("SharedCounter", func(t *testing.T) {
		mr, rdb := newRedis(t)
		router := gin.New()
		router.Use(RateLimit("api", 2, 2, rdb))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			codes = append(codes, w.Code)
		}
		assert.Equal(t, []int{200, 200, 429}, codes)

		mr.FastForward(61 * time.Second)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("LocalFallback", func(t *testing.T) {
		mr, rdb := newRedis(t)
		mr.Close()

		router := gin.New()
		router.Use(RateLimit("auth", 1, 1, rdb))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})
}

func TestInFlightGuard(t *testing.T) {
	t.Run("RejectsDuplicate", func(t *testing.T) {
		_, rdb := newRedis(t)
		entered := make(chan struct{})
		release := make(chan struct{})

		router := gin.New()
		router.Use(InFlightGuard(redisdb.NewFromClient(rdb), "JSESSIONID", time.Minute))
		router.POST("/api/v1/checkout/finalize", func(c *gin.Context) {
			close(entered)
			<-release
			c.Status(http.StatusOK)
		})

		newReq := func() *http.Request {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/finalize", nil)
			req.AddCookie(&http.Cookie{Name: "JSESSIONID", Value: "s1"})
			return req
		}

		first := httptest.NewRecorder()
		done := make(chan struct{})
		go func() {
			router.ServeHTTP(first, newReq())
			close(done)
		}()
		<-entered

		dup := httptest.NewRecorder()
		router.ServeHTTP(dup, newReq())
		assert.Equal(t, http.StatusConflict, dup.Code)
		assert.Equal(t, MsgRequestInProgress, decode(t, dup)["error"])

		close(release)
		<-done
		assert.Equal(t, http.StatusOK, first.Code)

		// lock released
		again := httptest.NewRecorder()
		router2 := gin.New()
		router2.Use(InFlightGuard(redisdb.NewFromClient(rdb), "JSESSIONID", time.Minute))
		router2.POST("/api/v1/checkout/finalize", func(c *gin.Context) { c.Status(http.StatusOK) })
		router2.ServeHTTP(again, newReq())
		assert.Equal(t, http.StatusOK, again.Code)
	})

	t.Run("FailsOpen", func(t *testing.T) {
		mr, rdb := newRedis(t)
		mr.Close()

		router := gin.New()
		router.Use(InFlightGuard(redisdb.NewFromClient(rdb), "JSESSIONID", time.Minute))
		router.POST("/cart/items", func(c *gin.Context) { c.Status(http.StatusCreated) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cart/items", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestRequestSizeLimit(t *testing.T) {
	router := gin.New()
	router.Use(RequestSizeLimit(8))
	router.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("this body is too long"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestCORS(t *testing.T) {
	cfg := &config.Config{Security: config.SecurityConfig{
		CORSAllowedOrigins: []string{"http://localhost:5173", "*.anvi.example"},
		CORSAllowedMethods: []string{"GET", "POST"},
		CORSAllowedHeaders: []string{"Content-Type", FlowTokenHeader},
	}}
	router := gin.New()
	router.Use(CORS(cfg))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for origin, allowed := range map[string]bool{
		"http://localhost:5173":     true,
		"https://shop.anvi.example": true,
		"https://evil.example":      false,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if allowed {
			assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"), origin)
			assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		} else {
			assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"), origin)
		}
	}
}
