// Package payment verifies card payments with Stripe before an order is placed.
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"github.com/your-org/boutique-storefront/internal/config"
	"github.com/your-org/boutique-storefront/internal/domain/checkout"
	"github.com/your-org/boutique-storefront/internal/pkg/apperr"
	"github.com/your-org/boutique-storefront/internal/pkg/logger"
)

// Messages shown when Stripe gives no text of its own
const (
	msgProcessing   = "Your payment is still processing. Please wait a moment and try again."
	msgNotCompleted = "Your payment was not completed. Please try again."
)

// StripeVerifier checks PaymentIntents with the Stripe API
type StripeVerifier struct {
	intents *paymentintent.Client
}

// NewStripeVerifier creates a verifier using the configured secret key
func NewStripeVerifier(cfg *config.Config) (*StripeVerifier, error) {
	if cfg.Payment.StripeSecretKey == "" {
		return nil, fmt.Errorf("Stripe secret key is required")
	}
	return newStripeVerifier(cfg.Payment.StripeSecretKey, stripe.GetBackend(stripe.APIBackend)), nil
}

func newStripeVerifier(key string, backend stripe.Backend) *StripeVerifier {
	return &StripeVerifier{intents: &paymentintent.Client{B: backend, Key: key}}
}

// VerifyIntent fetches intentID and requires it to have succeeded. Any other
// outcome becomes a provider error carrying Stripe's own message.
func (v *StripeVerifier) VerifyIntent(ctx context.Context, intentID string) (*checkout.PaymentConfirmation, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := v.intents.Get(intentID, params)
	if err != nil {
		return nil, handleStripeError(err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		logger.FromContext(ctx).WithField("stripe_intent_id", intentID).
			WithField("stripe_status", pi.Status).
			Warn("Payment intent has not succeeded")
		return nil, intentError(pi)
	}

	return &checkout.PaymentConfirmation{
		IntentID: pi.ID,
		Status:   string(pi.Status),
		Amount:   pi.Amount,
		Currency: string(pi.Currency),
	}, nil
}

func intentError(pi *stripe.PaymentIntent) error {
	cause := fmt.Errorf("payment intent %s status %s", pi.ID, pi.Status)
	if pi.LastPaymentError != nil && pi.LastPaymentError.Msg != "" {
		return apperr.Provider(pi.LastPaymentError.Msg, cause)
	}
	if pi.Status == stripe.PaymentIntentStatusProcessing {
		return apperr.Provider(msgProcessing, cause)
	}
	return apperr.Provider(msgNotCompleted, cause)
}

func handleStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.HTTPStatusCode >= 500 || stripeErr.Msg == "" {
			return apperr.Infrastructure(err)
		}
		return apperr.Provider(stripeErr.Msg, err)
	}
	return apperr.Infrastructure(err)
}
