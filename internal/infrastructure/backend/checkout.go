package backend

import (
	"context"
	"net/http"

	"github.com/your-org/boutique-storefront/internal/domain/checkout"
)

// CheckoutData returns the payment step payload, including the provider client secret
func (c *Client) CheckoutData(ctx context.Context) (*checkout.CheckoutData, error) {
	var out checkout.CheckoutData
	if _, err := c.send(ctx, request{method: http.MethodGet, path: "/api/payment/checkout-data"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FinalizeOrder places the order
func (c *Client) FinalizeOrder(ctx context.Context, req checkout.FinalizeRequest) (string, error) {
	return c.sendMessage(ctx, request{method: http.MethodPost, path: "/api/payment/finalize", body: req})
}
