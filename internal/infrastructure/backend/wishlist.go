package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/your-org/boutique-storefront/internal/domain/wishlist"
)

// GetWishlist returns the shopper's wishlist
func (c *Client) GetWishlist(ctx context.Context) ([]wishlist.WishlistItem, error) {
	var out []wishlist.WishlistItem
	if _, err := c.send(ctx, request{method: http.MethodGet, path: "/api/wishlist"}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []wishlist.WishlistItem{}
	}
	return out, nil
}

// AddToWishlist saves a product to the wishlist
func (c *Client) AddToWishlist(ctx context.Context, productID int64) (string, error) {
	return c.sendMessage(ctx, request{
		method: http.MethodPost,
		path:   "/api/wishlist",
		query:  url.Values{"productId": {strconv.FormatInt(productID, 10)}},
	})
}

// RemoveFromWishlist drops a product from the wishlist
func (c *Client) RemoveFromWishlist(ctx context.Context, productID int64) (string, error) {
	return c.sendMessage(ctx, request{method: http.MethodDelete, path: idPath("/api/wishlist/%d", productID)})
}
