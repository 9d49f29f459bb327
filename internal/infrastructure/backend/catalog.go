package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/your-org/boutique-storefront/internal/domain/catalog"
)

// ListProducts returns the category listing; an empty category lists everything
func (c *Client) ListProducts(ctx context.Context, category string) (*catalog.CategoryListing, error) {
	q := url.Values{}
	if category = strings.TrimSpace(category); category != "" {
		q.Set("category", category)
	}

	var out catalog.CategoryListing
	if _, err := c.send(ctx, request{method: http.MethodGet, path: "/api/products", query: q}, &out); err != nil {
		return nil, err
	}
	if out.Products == nil {
		out.Products = []catalog.Product{}
	}
	return &out, nil
}

// SearchProducts runs the backend keyword search over names and descriptions
func (c *Client) SearchProducts(ctx context.Context, keyword string) ([]catalog.Product, error) {
	var out []catalog.Product
	q := url.Values{"keyword": {keyword}}
	if _, err := c.send(ctx, request{method: http.MethodGet, path: "/api/products/search", query: q}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []catalog.Product{}
	}
	return out, nil
}

// GetProduct returns a product with its related products and approved reviews
func (c *Client) GetProduct(ctx context.Context, id int64) (*catalog.ProductDetail, error) {
	var out catalog.ProductDetail
	if _, err := c.send(ctx, request{method: http.MethodGet, path: idPath("/api/products/%d", id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitReview posts a review for moderation
func (c *Client) SubmitReview(ctx context.Context, productID int64, req catalog.ReviewRequest) (string, error) {
	return c.sendMessage(ctx, request{
		method: http.MethodPost,
		path:   idPath("/api/products/%d/review", productID),
		body:   req,
	})
}

// Categories returns the category names
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if _, err := c.send(ctx, request{method: http.MethodGet, path: "/api/products/categories"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// HomeFeed returns the landing page data
func (c *Client) HomeFeed(ctx context.Context) (*catalog.HomeFeed, error) {
	var out catalog.HomeFeed
	if _, err := c.send(ctx, request{method: http.MethodGet, path: "/api/public/init"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
