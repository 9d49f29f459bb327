// internal/interfaces/http/handlers/response.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/boutique-storefront/internal/interfaces/http/middleware"
	"github.com/your-org/boutique-storefront/internal/pkg/apperr"
	"github.com/your-org/boutique-storefront/internal/pkg/logger"
)

// respondError translates err once for the whole gateway. Infrastructure
// causes are logged here and never reach the shopper.
func respondError(c *gin.Context, err error) {
	appErr := apperr.As(err)

	if appErr.Kind == apperr.KindUnauthorized && appErr.Redirect == "" {
		appErr = apperr.Unauthorized(appErr.Message, middleware.LoginRedirect(c.Request.URL.Path))
	}
	if appErr.Kind == apperr.KindInfrastructure {
		logger.FromContext(c.Request.Context()).WithError(err).Error("Request failed")
	}

	middleware.AbortWithError(c, appErr)
}

// bindJSON binds the request body, answering 400 itself when it cannot
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"kind":    apperr.KindValidation,
			"details": err.Error(),
		})
		return false
	}
	return true
}

// parseID reads a positive numeric path parameter
func parseID(c *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, apperr.Validation("Invalid "+label))
		return 0, false
	}
	return id, true
}

// relayCookies hands backend Set-Cookie headers to the browser unchanged
func relayCookies(c *gin.Context, cookies []*http.Cookie) {
	for _, cookie := range cookies {
		http.SetCookie(c.Writer, cookie)
	}
}
