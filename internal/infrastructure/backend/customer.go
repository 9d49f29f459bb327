package backend

import (
	"context"
	"net/http"

	"github.com/your-org/boutique-storefront/internal/domain/customer"
)

// GetProfile returns the shopper's profile
func (c *Client) GetProfile(ctx context.Context) (*customer.Profile, error) {
	var out customer.Profile
	if _, err := c.send(ctx, request{method: http.MethodGet, path: "/api/customer/profile"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile saves the shopper's profile
func (c *Client) UpdateProfile(ctx context.Context, p customer.Profile) (string, error) {
	return c.sendMessage(ctx, request{method: http.MethodPut, path: "/api/customer/profile", body: p})
}

// ChangePassword changes the shopper's password
func (c *Client) ChangePassword(ctx context.Context, req customer.ChangePasswordRequest) (string, error) {
	return c.sendMessage(ctx, request{method: http.MethodPost, path: "/api/customer/profile/change-password", body: req})
}

// GetOrders returns the shopper's orders
func (c *Client) GetOrders(ctx context.Context) ([]customer.Order, error) {
	var out []customer.Order
	if _, err := c.send(ctx, request{method: http.MethodGet, path: "/api/customer/orders"}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []customer.Order{}
	}
	return out, nil
}

// RequestReturn asks for a return of a delivered order
func (c *Client) RequestReturn(ctx context.Context, orderID int64) (string, error) {
	return c.sendMessage(ctx, request{method: http.MethodPost, path: idPath("/api/customer/orders/%d/return", orderID)})
}

// GetCoupons returns the active coupons
func (c *Client) GetCoupons(ctx context.Context) ([]customer.Coupon, error) {
	var out []customer.Coupon
	if _, err := c.send(ctx, request{method: http.MethodGet, path: "/api/customer/coupons"}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []customer.Coupon{}
	}
	return out, nil
}

// GetGiftCards returns the shopper's gift cards
func (c *Client) GetGiftCards(ctx context.Context) ([]customer.GiftCard, error) {
	var out []customer.GiftCard
	if _, err := c.send(ctx, request{method: http.MethodGet, path: "/api/customer/gift-cards"}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []customer.GiftCard{}
	}
	return out, nil
}

// RedeemGiftCard adds a gift card to the shopper's account
func (c *Client) RedeemGiftCard(ctx context.Context, code string) (string, error) {
	return c.sendMessage(ctx, request{
		method: http.MethodPost,
		path:   "/api/customer/gift-cards/redeem",
		body:   map[string]string{"code": code},
	})
}

// GetAddresses returns the shopper's saved addresses
func (c *Client) GetAddresses(ctx context.Context) ([]customer.Address, error) {
	var out []customer.Address
	if _, err := c.send(ctx, request{method: http.MethodGet, path: "/api/customer/addresses"}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []customer.Address{}
	}
	return out, nil
}

// SaveAddress creates an address, or replaces it when a.ID is set
func (c *Client) SaveAddress(ctx context.Context, a customer.Address) (*customer.Address, error) {
	var out customer.Address
	if _, err := c.send(ctx, request{method: http.MethodPost, path: "/api/customer/addresses", body: a}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAddress removes an address
func (c *Client) DeleteAddress(ctx context.Context, id int64) error {
	_, err := c.send(ctx, request{method: http.MethodDelete, path: idPath("/api/customer/addresses/%d", id)}, nil)
	return err
}
