package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/your-org/boutique-storefront/internal/domain/cart"
)

// GetCart returns the shopper's cart
func (c *Client) GetCart(ctx context.Context) (*cart.Cart, error) {
	var out cart.Cart
	if _, err := c.send(ctx, request{method: http.MethodGet, path: "/api/cart"}, &out); err != nil {
		return nil, err
	}
	if out.Items == nil {
		out.Items = []cart.CartItem{}
	}
	return &out, nil
}

// AddToCart adds quantity of a product to the cart
func (c *Client) AddToCart(ctx context.Context, productID int64, quantity int) (string, error) {
	return c.sendMessage(ctx, request{
		method: http.MethodPost,
		path:   "/api/cart/add",
		form: url.Values{
			"productId": {strconv.FormatInt(productID, 10)},
			"quantity":  {strconv.Itoa(quantity)},
		},
	})
}

// UpdateCartItem sets an item's quantity; zero removes it
func (c *Client) UpdateCartItem(ctx context.Context, itemID int64, quantity int) (string, error) {
	return c.sendMessage(ctx, request{
		method: http.MethodPut,
		path:   idPath("/api/cart/items/%d", itemID),
		query:  url.Values{"quantity": {strconv.Itoa(quantity)}},
	})
}

// RemoveCartItem removes an item from the cart
func (c *Client) RemoveCartItem(ctx context.Context, itemID int64) (string, error) {
	return c.sendMessage(ctx, request{method: http.MethodDelete, path: idPath("/api/cart/items/%d", itemID)})
}
