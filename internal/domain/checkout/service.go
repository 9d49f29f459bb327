// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/boutique-storefront/internal/config"
	"github.com/your-org/boutique-storefront/internal/domain/cart"
	"github.com/your-org/boutique-storefront/internal/domain/customer"
	"github.com/your-org/boutique-storefront/internal/pkg/apperr"
	"github.com/your-org/boutique-storefront/internal/pkg/flow"
	"github.com/your-org/boutique-storefront/internal/pkg/logger"
)

// Steps the shopper is sent to
const (
	StepAddresses      = "/customer/addresses"
	StepPayment        = "/checkout"
	StepPaymentSuccess = "/payment/success"
	StepOrders         = "/customer/orders"
)

// Backend is the part of the boutique API checkout talks to
type Backend interface {
	GetAddresses(ctx context.Context) ([]customer.Address, error)
	CheckoutData(ctx context.Context) (*CheckoutData, error)
	FinalizeOrder(ctx context.Context, req FinalizeRequest) (string, error)
}

// PaymentVerifier confirms a card payment with the payment provider
type PaymentVerifier interface {
	VerifyIntent(ctx context.Context, intentID string) (*PaymentConfirmation, error)
}

// FlowStore keeps the checkout context between steps
type FlowStore interface {
	Start(ctx context.Context, kind flow.Kind, payload any) (*flow.Record, error)
	Load(ctx context.Context, id string, kind flow.Kind, out any) (*flow.Record, error)
	Save(ctx context.Context, rec *flow.Record, payload any) error
	Discard(ctx context.Context, id string) error
}

// Service handles checkout business logic
type Service struct {
	backend  Backend
	flows    FlowStore
	verifier PaymentVerifier
	config   *config.Config
}

// NewService creates a new checkout service. A nil verifier skips provider verification.
func NewService(backend Backend, flows FlowStore, verifier PaymentVerifier, cfg *config.Config) *Service {
	return &Service{
		backend:  backend,
		flows:    flows,
		verifier: verifier,
		config:   cfg,
	}
}

// SelectAddressRequest represents the address step submission
type SelectAddressRequest struct {
	AddressID int64 `json:"addressId" binding:"required,min=1"`
}

// FinalizeCheckoutRequest represents the finalize step submission
type FinalizeCheckoutRequest struct {
	PaymentMode    PaymentMode `json:"paymentMode" binding:"required"`
	StripeIntentID string      `json:"stripeIntentId"`
}

// SelectAddress starts a checkout for one of the shopper's saved addresses
func (s *Service) SelectAddress(ctx context.Context, addressID int64) (*AddressSelection, error) {
	addresses, err := s.backend.GetAddresses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load addresses: %w", err)
	}
	if len(addresses) == 0 {
		return nil, apperr.Business(400, "Please add a shipping address before checking out.")
	}

	found := false
	for _, a := range addresses {
		if a.ID == addressID {
			found = true
			break
		}
	}
	if !found {
		return nil, apperr.Validation("Please choose one of your saved addresses")
	}

	state, err := Transition(StateAddressSelection, StatePaymentInit)
	if err != nil {
		return nil, err
	}

	rec, err := s.flows.Start(ctx, flow.KindCheckout, Context{AddressID: addressID, State: state})
	if err != nil {
		return nil, apperr.Infrastructure(err)
	}

	return &AddressSelection{AddressID: addressID, Next: StepPayment, FlowID: rec.ID}, nil
}

// InitPayment loads the payment step for the checkout flowID. Reaching this step
// without a selected address, or reaching it a second time, sends the shopper back
// to address selection.
func (s *Service) InitPayment(ctx context.Context, flowID string) (*PaymentView, error) {
	var cc Context
	rec, err := s.loadContext(ctx, flowID, &cc)
	if err != nil {
		return nil, err
	}

	if cc.State != StatePaymentInit {
		// the payment step was already rendered for this flow: a reload
		if err := s.flows.Discard(ctx, rec.ID); err != nil {
			logger.FromContext(ctx).WithError(err).Warn("Failed to discard reloaded checkout flow")
		}
		return nil, apperr.Redirect(StepAddresses, "Your checkout session was reset. Please select your address again.")
	}

	data, err := s.backend.CheckoutData(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout data: %w", err)
	}

	if cc.State, err = Transition(cc.State, StatePaymentMethodChoice); err != nil {
		return nil, err
	}
	cc.StripeClientSecret = data.StripeClientSecret
	cc.PublishableKey = data.PublishableKey
	if cc.PublishableKey == "" {
		cc.PublishableKey = s.config.Payment.StripePublishableKey
	}
	cc.TotalPrice = data.TotalPrice

	if err := s.flows.Save(ctx, rec, cc); err != nil {
		return nil, apperr.Infrastructure(err)
	}

	view := &PaymentView{
		AddressID:          cc.AddressID,
		Items:              cart.NewCartResponse(&cart.Cart{Items: data.CartItems, Total: data.TotalPrice}).Items,
		TotalPrice:         cc.TotalPrice,
		StripeClientSecret: cc.StripeClientSecret,
		PublishableKey:     cc.PublishableKey,
		StripeError:        data.StripeError,
		PaymentMethods:     s.getAvailablePaymentMethods(cc),
	}
	for i := range data.Addresses {
		if data.Addresses[i].ID == cc.AddressID {
			view.Address = &data.Addresses[i]
			break
		}
	}
	return view, nil
}

// Finalize places the order for the checkout flowID
func (s *Service) Finalize(ctx context.Context, flowID string, req FinalizeCheckoutRequest) (*Outcome, error) {
	var cc Context
	rec, err := s.loadContext(ctx, flowID, &cc)
	if err != nil {
		return nil, err
	}
	if cc.State != StatePaymentMethodChoice {
		return nil, apperr.Redirect(StepAddresses, "Please select your address to start checkout.")
	}

	mode := PaymentMode(strings.ToUpper(strings.TrimSpace(string(req.PaymentMode))))
	if !mode.Valid() {
		return nil, apperr.Validation("Please choose card or cash on delivery")
	}
	intentID := strings.TrimSpace(req.StripeIntentID)

	if mode == PaymentModeCard {
		if intentID == "" {
			return nil, apperr.Validation("Card payment has not been confirmed")
		}
		if cc.StripeClientSecret == "" {
			return nil, apperr.Validation("Card payments are unavailable for this checkout")
		}
		if !strings.HasPrefix(cc.StripeClientSecret, intentID+"_secret_") {
			return nil, apperr.Validation("This payment does not belong to the current checkout")
		}
		if err := s.verifyCard(ctx, intentID); err != nil {
			return nil, err
		}
	} else {
		intentID = ""
	}

	state, err := Transition(cc.State, StateFinalizing)
	if err != nil {
		return nil, err
	}

	msg, err := s.backend.FinalizeOrder(ctx, FinalizeRequest{
		AddressID:      cc.AddressID,
		PaymentMode:    mode,
		StripeIntentID: intentID,
	})
	if err != nil {
		if _, terr := Transition(state, StateFailure); terr != nil {
			return nil, terr
		}
		return s.handleFinalizeFailure(ctx, rec, mode, intentID, err)
	}

	if _, err := Transition(state, StateSuccess); err != nil {
		return nil, err
	}
	if err := s.flows.Discard(ctx, rec.ID); err != nil {
		logger.FromContext(ctx).WithError(err).Warn("Failed to discard completed checkout flow")
	}

	if msg == "" {
		msg = "Order placed successfully."
	}
	return &Outcome{Status: OutcomeSuccess, Message: msg, Next: StepPaymentSuccess}, nil
}

func (s *Service) handleFinalizeFailure(ctx context.Context, rec *flow.Record, mode PaymentMode, intentID string, cause error) (*Outcome, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"flow_id":      rec.ID,
		"payment_mode": mode,
	})

	if mode == PaymentModeCard {
		// The charge went through; resubmitting could charge the card twice.
		log.WithError(cause).WithField("stripe_intent_id", intentID).Error("Order finalize failed after a successful card charge")
		if err := s.flows.Discard(ctx, rec.ID); err != nil {
			log.WithError(err).Warn("Failed to discard degraded checkout flow")
		}
		return &Outcome{Status: OutcomeDegraded, Message: DegradedMessage, Next: StepOrders}, nil
	}

	// COD: nothing was charged; the flow stays on the payment step for a manual resubmit
	log.WithError(cause).Warn("Order finalize failed")
	return nil, fmt.Errorf("failed to place order: %w", cause)
}

func (s *Service) verifyCard(ctx context.Context, intentID string) error {
	if s.verifier == nil {
		logger.FromContext(ctx).WithField("stripe_intent_id", intentID).Warn("Payment verification disabled, trusting client confirmation")
		return nil
	}

	confirmation, err := s.verifier.VerifyIntent(ctx, intentID)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).WithFields(logrus.Fields{
		"stripe_intent_id": confirmation.IntentID,
		"amount":           confirmation.Amount,
		"currency":         confirmation.Currency,
	}).Info("Card payment verified")
	return nil
}

func (s *Service) loadContext(ctx context.Context, flowID string, cc *Context) (*flow.Record, error) {
	rec, err := s.flows.Load(ctx, flowID, flow.KindCheckout, cc)
	if errors.Is(err, flow.ErrNotFound) || (err == nil && cc.AddressID <= 0) {
		return nil, apperr.Redirect(StepAddresses, "Please select your address to start checkout.")
	}
	if err != nil {
		return nil, apperr.Infrastructure(err)
	}
	return rec, nil
}

// getAvailablePaymentMethods returns the payment options for cc
func (s *Service) getAvailablePaymentMethods(cc Context) []PaymentMethod {
	return []PaymentMethod{
		{
			Mode:        PaymentModeCard,
			Name:        "Credit / Debit Card",
			Description: "Pay securely with Stripe",
			Available:   cc.StripeClientSecret != "",
		},
		{
			Mode:        PaymentModeCOD,
			Name:        "Cash on Delivery",
			Description: "Pay when your order arrives",
			Available:   true,
		},
	}
}
