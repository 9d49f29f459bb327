// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/boutique-storefront/internal/domain/account"
	"github.com/your-org/boutique-storefront/internal/pkg/apperr"
	"github.com/your-org/boutique-storefront/internal/pkg/flow"
)

// AuthHandler handles registration, login and password recovery endpoints
type AuthHandler struct {
	accountService *account.Service
	tickets        *FlowTickets
	sessionCookie  string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accountService *account.Service, tickets *FlowTickets, sessionCookie string) *AuthHandler {
	return &AuthHandler{
		accountService: accountService,
		tickets:        tickets,
		sessionCookie:  sessionCookie,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var form account.RegistrationForm
	if !bindJSON(c, &form) {
		return
	}

	result, err := h.accountService.Register(c.Request.Context(), form)
	respondStep(c, h.tickets, flow.KindRegistration, http.StatusCreated, result, err)
}

// ConfirmOTP handles POST /auth/confirm-otp
func (h *AuthHandler) ConfirmOTP(c *gin.Context) {
	var req account.OTPRequest
	if !bindJSON(c, &req) {
		return
	}

	flowID := h.tickets.Resolve(c, flow.KindRegistration)
	result, err := h.accountService.ConfirmRegistration(c.Request.Context(), flowID, req.OTP)
	respondStep(c, h.tickets, flow.KindRegistration, http.StatusOK, result, err)
}

// Login handles POST /auth/login. The backend session cookie is relayed to
// the browser as issued.
func (h *AuthHandler) Login(c *gin.Context) {
	var req account.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Redirect == "" {
		req.Redirect = c.Query("redirect")
	}

	result, err := h.accountService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	relayCookies(c, result.Cookies)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    result,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	cookies, err := h.accountService.Logout(c.Request.Context())
	if err != nil && !apperr.Is(err, apperr.KindUnauthorized) {
		respondError(c, err)
		return
	}

	if len(cookies) > 0 {
		relayCookies(c, cookies)
	} else {
		c.SetCookie(h.sessionCookie, "", -1, "/", "", false, true)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// Session handles GET /auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	session, err := h.accountService.Session(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session retrieved successfully",
		"data": gin.H{
			"username":    session.Username,
			"displayName": session.DisplayName,
			"roles":       session.Roles,
			"isAdmin":     session.IsAdmin(),
		},
	})
}

// ForgotPassword handles POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req account.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.accountService.ForgotPassword(c.Request.Context(), req.Identifier)
	respondStep(c, h.tickets, flow.KindRecovery, http.StatusOK, result, err)
}

// VerifyResetOTP handles POST /auth/verify-reset-otp
func (h *AuthHandler) VerifyResetOTP(c *gin.Context) {
	var req account.OTPRequest
	if !bindJSON(c, &req) {
		return
	}

	flowID := h.tickets.Resolve(c, flow.KindRecovery)
	result, err := h.accountService.VerifyResetOTP(c.Request.Context(), flowID, req.OTP)
	respondStep(c, h.tickets, flow.KindRecovery, http.StatusOK, result, err)
}

// ResetPassword handles POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req account.NewPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	flowID := h.tickets.Resolve(c, flow.KindRecovery)
	result, err := h.accountService.ResetPassword(c.Request.Context(), flowID, req)
	respondStep(c, h.tickets, flow.KindRecovery, http.StatusOK, result, err)
}

// PasswordStrength handles POST /auth/password-strength
func (h *AuthHandler) PasswordStrength(c *gin.Context) {
	var req account.PasswordStrengthRequest
	if !bindJSON(c, &req) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": account.PasswordStrength(req.Password),
	})
}

// respondStep answers one step of an OTP flow. A step that continues the flow
// refreshes its ticket; a finished or restarted flow drops it.
func respondStep(c *gin.Context, tickets *FlowTickets, kind flow.Kind, status int, result *account.StepResult, err error) {
	if err != nil {
		if apperr.Is(err, apperr.KindRedirect) {
			tickets.Clear(c, kind)
		}
		respondError(c, err)
		return
	}

	if result.FlowID != "" {
		if err := tickets.Issue(c, kind, result.FlowID); err != nil {
			respondError(c, apperr.Infrastructure(err))
			return
		}
	} else {
		tickets.Clear(c, kind)
	}

	c.JSON(status, gin.H{
		"message": result.Message,
		"data":    result,
	})
}
