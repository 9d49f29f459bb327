// internal/interfaces/http/handlers/site.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/boutique-storefront/internal/domain/site"
)

// SiteHandler handles the public contact, newsletter and policy endpoints
type SiteHandler struct {
	siteService *site.Service
}

// NewSiteHandler creates a new site handler
func NewSiteHandler(siteService *site.Service) *SiteHandler {
	return &SiteHandler{siteService: siteService}
}

// SubmitContact handles POST /public/contact
func (h *SiteHandler) SubmitContact(c *gin.Context) {
	var req site.ContactRequest
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.siteService.SubmitContact(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": msg,
	})
}

// Subscribe handles POST /public/newsletter/subscribe
func (h *SiteHandler) Subscribe(c *gin.Context) {
	var req site.SubscribeRequest
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.siteService.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": msg,
	})
}

// GetPolicies handles GET /public/policies
func (h *SiteHandler) GetPolicies(c *gin.Context) {
	policies, err := h.siteService.Policies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Policies retrieved successfully",
		"data":    policies,
	})
}
