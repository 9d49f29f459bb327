package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/your-org/boutique-storefront/internal/domain/admin"
	"github.com/your-org/boutique-storefront/internal/domain/catalog"
	"github.com/your-org/boutique-storefront/internal/domain/customer"
)

// AdminStatus returns the admin dashboard status
func (c *Client) AdminStatus(ctx context.Context) (*admin.Status, error) {
	var out admin.Status
	if _, err := c.send(ctx, request{method: http.MethodGet, path: "/api/admin/status"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminProducts returns the inventory, optionally for one category
func (c *Client) AdminProducts(ctx context.Context, category string) ([]catalog.Product, error) {
	q := url.Values{}
	if category = strings.TrimSpace(category); category != "" {
		q.Set("category", category)
	}

	var out []catalog.Product
	if _, err := c.send(ctx, request{method: http.MethodGet, path: "/api/admin/products", query: q}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []catalog.Product{}
	}
	return out, nil
}

// CreateProduct adds a product
func (c *Client) CreateProduct(ctx context.Context, p catalog.Product) (*catalog.Product, error) {
	var out catalog.Product
	if _, err := c.send(ctx, request{method: http.MethodPost, path: "/api/admin/products", body: p}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct replaces a product
func (c *Client) UpdateProduct(ctx context.Context, id int64, p catalog.Product) (*catalog.Product, error) {
	var out catalog.Product
	if _, err := c.send(ctx, request{method: http.MethodPut, path: idPath("/api/admin/products/%d", id), body: p}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct removes a product
func (c *Client) DeleteProduct(ctx context.Context, id int64) (string, error) {
	return c.sendMessage(ctx, request{method: http.MethodDelete, path: idPath("/api/admin/products/%d", id)})
}

// AdminOrders returns every order
func (c *Client) AdminOrders(ctx context.Context) ([]customer.Order, error) {
	var out []customer.Order
	if _, err := c.send(ctx, request{method: http.MethodGet, path: "/api/admin/orders"}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []customer.Order{}
	}
	return out, nil
}

// UpdateOrderStatus moves an order to status
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status string) (string, error) {
	return c.sendMessage(ctx, request{
		method: http.MethodPost,
		path:   idPath("/api/admin/orders/%d/status", id),
		query:  url.Values{"newStatus": {status}},
	})
}

// FinalizeReturn completes a requested return
func (c *Client) FinalizeReturn(ctx context.Context, id int64) (string, error) {
	return c.sendMessage(ctx, request{method: http.MethodPost, path: idPath("/api/admin/orders/%d/finalize-return", id)})
}

// UnapprovedReviews returns the moderation queue
func (c *Client) UnapprovedReviews(ctx context.Context) ([]catalog.Review, error) {
	var out []catalog.Review
	if _, err := c.send(ctx, request{method: http.MethodGet, path: "/api/admin/reviews/unapproved"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveReview publishes a review
func (c *Client) ApproveReview(ctx context.Context, id int64) (string, error) {
	return c.sendMessage(ctx, request{method: http.MethodPost, path: idPath("/api/admin/reviews/%d/approve", id)})
}

// DeleteReview rejects a review
func (c *Client) DeleteReview(ctx context.Context, id int64) (string, error) {
	return c.sendMessage(ctx, request{method: http.MethodDelete, path: idPath("/api/admin/reviews/%d", id)})
}

// ContactMessages returns the contact form inbox
func (c *Client) ContactMessages(ctx context.Context) ([]admin.ContactMessage, error) {
	var out []admin.ContactMessage
	if _, err := c.send(ctx, request{method: http.MethodGet, path: "/api/admin/contacts"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteContactMessage removes a contact message
func (c *Client) DeleteContactMessage(ctx context.Context, id int64) error {
	_, err := c.send(ctx, request{method: http.MethodDelete, path: idPath("/api/admin/contacts/%d", id)}, nil)
	return err
}

// UpdateCredentials replaces the admin's credentials
func (c *Client) UpdateCredentials(ctx context.Context, u admin.CredentialsUpdate) (string, error) {
	return c.sendMessage(ctx, request{method: http.MethodPut, path: "/api/admin/profile", body: u})
}
