// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/your-org/boutique-storefront/internal/infrastructure/backend"
	"github.com/your-org/boutique-storefront/internal/pkg/apperr"
)

const apiPrefix = "/api/v1"

// Session relays the shopper's backend session cookie into the request context.
// The cookie value is never parsed; the backend alone decides who the shopper is.
func Session(cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
			c.Set("has_session", true)
			c.Request = c.Request.WithContext(backend.WithSession(c.Request.Context(), cookie))
		}
		c.Next()
	}
}

// RequireSession rejects requests without a backend session before any backend call
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !HasSession(c) {
			AbortWithError(c, apperr.Unauthorized("", LoginRedirect(c.Request.URL.Path)))
			return
		}
		c.Next()
	}
}

// HasSession reports whether the request carries a backend session cookie
func HasSession(c *gin.Context) bool {
	return c.GetBool("has_session")
}

// LoginRedirect builds the login destination that returns the shopper to path
func LoginRedirect(path string) string {
	path = strings.TrimPrefix(path, apiPrefix)
	if path == "" {
		path = "/"
	}
	return "/login?redirect=" + url.QueryEscape(path)
}

// AbortWithError writes a classified error and stops the chain
func AbortWithError(c *gin.Context, err error) {
	appErr := apperr.As(err)
	body := gin.H{
		"error": appErr.Message,
		"kind":  appErr.Kind,
	}
	if appErr.Redirect != "" {
		body["redirect"] = appErr.Redirect
	}
	status := appErr.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, body)
}
