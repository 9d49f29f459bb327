// internal/domain/checkout/entity.go
package checkout

import (
	"github.com/your-org/boutique-storefront/internal/domain/cart"
	"github.com/your-org/boutique-storefront/internal/domain/customer"
)

// PaymentMode is how the shopper pays
type PaymentMode string

const (
	PaymentModeCard PaymentMode = "CARD"
	PaymentModeCOD  PaymentMode = "COD"
)

// Valid reports whether m is a supported payment mode
func (m PaymentMode) Valid() bool {
	return m == PaymentModeCard || m == PaymentModeCOD
}

// Context is the checkout state carried between the address, payment and
// finalize steps
type Context struct {
	AddressID          int64   `json:"addressId"`
	StripeClientSecret string  `json:"stripeClientSecret,omitempty"`
	PublishableKey     string  `json:"publishableKey,omitempty"`
	TotalPrice         float64 `json:"totalPrice"`
	State              State   `json:"state"`
}

// CheckoutData is the backend's payment-step payload. TotalPrice is authoritative.
type CheckoutData struct {
	CartItems          []cart.CartItem    `json:"cartItems"`
	TotalPrice         float64            `json:"totalPrice"`
	Addresses          []customer.Address `json:"addresses"`
	StripeClientSecret string             `json:"stripeClientSecret"`
	StripeError        string             `json:"stripeError"`
	PublishableKey     string             `json:"publishableKey"`
}

// FinalizeRequest is sent to the backend to place the order
type FinalizeRequest struct {
	AddressID      int64       `json:"addressId"`
	PaymentMode    PaymentMode `json:"paymentMode"`
	StripeIntentID string      `json:"stripeIntentId,omitempty"`
}

// PaymentConfirmation is the provider's view of a completed card payment
type PaymentConfirmation struct {
	IntentID string `json:"intentId"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// PaymentMethod represents an available payment method
type PaymentMethod struct {
	Mode        PaymentMode `json:"mode"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Available   bool        `json:"available"`
}

// AddressSelection is the result of choosing a shipping address
type AddressSelection struct {
	AddressID int64  `json:"addressId"`
	Next      string `json:"next"`

	FlowID string `json:"-"`
}

// PaymentView is everything the payment step renders
type PaymentView struct {
	AddressID          int64                   `json:"addressId"`
	Address            *customer.Address       `json:"address,omitempty"`
	Items              []cart.CartItemResponse `json:"items"`
	TotalPrice         float64                 `json:"totalPrice"`
	StripeClientSecret string                  `json:"stripeClientSecret,omitempty"`
	PublishableKey     string                  `json:"publishableKey,omitempty"`
	StripeError        string                  `json:"stripeError,omitempty"`
	PaymentMethods     []PaymentMethod         `json:"paymentMethods"`
}

// Outcome statuses
const (
	OutcomeSuccess  = "success"
	OutcomeDegraded = "degraded"
)

// DegradedMessage is shown when a card was charged but the order could not be recorded
const DegradedMessage = "Your payment was received but we could not record your order yet. Please contact support and do not pay again."

// Outcome is the result of finalizing a checkout
type Outcome struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Next    string `json:"next"`
}
