// internal/interfaces/http/handlers/user_profile.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/boutique-storefront/internal/domain/account"
	"github.com/your-org/boutique-storefront/internal/domain/customer"
	"github.com/your-org/boutique-storefront/internal/pkg/flow"
)

// UserProfileHandler handles the customer area: profile, orders, coupons and gift cards
type UserProfileHandler struct {
	customerService *customer.Service
	accountService  *account.Service
	tickets         *FlowTickets
}

// NewUserProfileHandler creates a new user profile handler
func NewUserProfileHandler(customerService *customer.Service, accountService *account.Service, tickets *FlowTickets) *UserProfileHandler {
	return &UserProfileHandler{
		customerService: customerService,
		accountService:  accountService,
		tickets:         tickets,
	}
}

// GetProfile handles GET /customer/profile
func (h *UserProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.customerService.GetProfile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile retrieved successfully",
		"data":    profile,
	})
}

// UpdateProfile handles PUT /customer/profile
func (h *UserProfileHandler) UpdateProfile(c *gin.Context) {
	var req customer.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, msg, err := h.customerService.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": msg,
		"data":    profile,
	})
}

// ChangePassword handles POST /customer/profile/change-password
func (h *UserProfileHandler) ChangePassword(c *gin.Context) {
	var req customer.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.customerService.ChangePassword(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": msg,
	})
}

// ChangeEmail handles POST /customer/profile/change-email
func (h *UserProfileHandler) ChangeEmail(c *gin.Context) {
	var req account.ChangeEmailRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.accountService.RequestEmailChange(c.Request.Context(), req.NewEmail)
	respondStep(c, h.tickets, flow.KindEmailChange, http.StatusOK, result, err)
}

// FinalizeEmailChange handles POST /customer/profile/change-email/finalize
func (h *UserProfileHandler) FinalizeEmailChange(c *gin.Context) {
	var req account.OTPRequest
	if !bindJSON(c, &req) {
		return
	}

	flowID := h.tickets.Resolve(c, flow.KindEmailChange)
	result, err := h.accountService.FinalizeEmailChange(c.Request.Context(), flowID, req.OTP)
	respondStep(c, h.tickets, flow.KindEmailChange, http.StatusOK, result, err)
}

// GetOrders handles GET /customer/orders
func (h *UserProfileHandler) GetOrders(c *gin.Context) {
	orders, err := h.customerService.GetOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    orders,
	})
}

// RequestReturn handles POST /customer/orders/:id/return
func (h *UserProfileHandler) RequestReturn(c *gin.Context) {
	orderID, ok := parseID(c, "id", "order ID")
	if !ok {
		return
	}

	orders, err := h.customerService.RequestReturn(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": orders.Message,
		"data":    orders,
	})
}

// GetCoupons handles GET /customer/coupons
func (h *UserProfileHandler) GetCoupons(c *gin.Context) {
	coupons, err := h.customerService.GetCoupons(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupons retrieved successfully",
		"data":    coupons,
	})
}

// GetGiftCards handles GET /customer/gift-cards
func (h *UserProfileHandler) GetGiftCards(c *gin.Context) {
	giftCards, err := h.customerService.GetGiftCards(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Gift cards retrieved successfully",
		"data":    giftCards,
	})
}

// RedeemGiftCard handles POST /customer/gift-cards/redeem
func (h *UserProfileHandler) RedeemGiftCard(c *gin.Context) {
	var req customer.RedeemGiftCardRequest
	if !bindJSON(c, &req) {
		return
	}

	giftCards, err := h.customerService.RedeemGiftCard(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": giftCards.Message,
		"data":    giftCards,
	})
}
