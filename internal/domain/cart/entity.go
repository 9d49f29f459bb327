// internal/domain/cart/entity.go
package cart

import "github.com/your-org/boutique-storefront/internal/domain/catalog"

// CartItem is a line in the shopper's backend-owned cart
type CartItem struct {
	ID       int64           `json:"id"`
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns the line total at the product's listed price
func (i CartItem) Subtotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}

// Cart is the backend's cart snapshot. Total is the backend's figure and is never recomputed.
type Cart struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

// CartItemResponse represents a cart line with its display fields
type CartItemResponse struct {
	ID       int64               `json:"id"`
	Product  catalog.ProductView `json:"product"`
	Quantity int                 `json:"quantity"`
	Subtotal float64             `json:"subtotal"`
}

// CartResponse represents a shopping cart with items and summary
type CartResponse struct {
	Items         []CartItemResponse `json:"items"`
	ItemCount     int                `json:"item_count"`
	TotalQuantity int                `json:"total_quantity"`
	Total         float64            `json:"total"`
	Message       string             `json:"message,omitempty"`
}

// NewCartResponse builds the display form of c
func NewCartResponse(c *Cart) *CartResponse {
	resp := &CartResponse{
		Items: make([]CartItemResponse, 0, len(c.Items)),
		Total: c.Total,
	}
	for _, item := range c.Items {
		resp.Items = append(resp.Items, CartItemResponse{
			ID:       item.ID,
			Product:  catalog.NewProductView(item.Product),
			Quantity: item.Quantity,
			Subtotal: item.Subtotal(),
		})
		resp.TotalQuantity += item.Quantity
	}
	resp.ItemCount = len(c.Items)
	return resp
}
