// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/boutique-storefront/internal/domain/checkout"
	"github.com/your-org/boutique-storefront/internal/pkg/apperr"
	"github.com/your-org/boutique-storefront/internal/pkg/flow"
)

// CheckoutHandler handles the address, payment and finalize steps of checkout
type CheckoutHandler struct {
	checkoutService *checkout.Service
	tickets         *FlowTickets
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service, tickets *FlowTickets) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		tickets:         tickets,
	}
}

// SelectAddress handles POST /checkout/address
func (h *CheckoutHandler) SelectAddress(c *gin.Context) {
	var req checkout.SelectAddressRequest
	if !bindJSON(c, &req) {
		return
	}

	selection, err := h.checkoutService.SelectAddress(c.Request.Context(), req.AddressID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.tickets.Issue(c, flow.KindCheckout, selection.FlowID); err != nil {
		respondError(c, apperr.Infrastructure(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address selected",
		"data":    selection,
	})
}

// GetPayment handles GET /checkout/payment
func (h *CheckoutHandler) GetPayment(c *gin.Context) {
	flowID := h.tickets.Resolve(c, flow.KindCheckout)

	view, err := h.checkoutService.InitPayment(c.Request.Context(), flowID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment details retrieved successfully",
		"data":    view,
	})
}

// Finalize handles POST /checkout/finalize. A charged card whose order could
// not be recorded answers 202 so the client does not offer to pay again.
func (h *CheckoutHandler) Finalize(c *gin.Context) {
	var req checkout.FinalizeCheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	flowID := h.tickets.Resolve(c, flow.KindCheckout)

	outcome, err := h.checkoutService.Finalize(c.Request.Context(), flowID, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.tickets.Clear(c, flow.KindCheckout)

	status := http.StatusOK
	if outcome.Status == checkout.OutcomeDegraded {
		status = http.StatusAccepted
	}
	c.JSON(status, gin.H{
		"message": outcome.Message,
		"data":    outcome,
	})
}

// fail drops the ticket once the checkout it names can no longer continue
func (h *CheckoutHandler) fail(c *gin.Context, err error) {
	if apperr.Is(err, apperr.KindRedirect) {
		h.tickets.Clear(c, flow.KindCheckout)
	}
	respondError(c, err)
}
