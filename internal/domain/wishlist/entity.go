package wishlist

import "github.com/your-org/boutique-storefront/internal/domain/catalog"

// WishlistItem represents a wishlist item
type WishlistItem struct {
	ID      int64           `json:"id"`
	Product catalog.Product `json:"product"`
}

// WishlistItemResponse represents a wishlist item with display fields
type WishlistItemResponse struct {
	ID      int64               `json:"id"`
	Product catalog.ProductView `json:"product"`
}

// WishlistResponse is the refetched wishlist
type WishlistResponse struct {
	Items   []WishlistItemResponse `json:"items"`
	Count   int                    `json:"count"`
	Message string                 `json:"message,omitempty"`
}

// Contains reports whether productID is on the wishlist
func (r *WishlistResponse) Contains(productID int64) bool {
	for _, item := range r.Items {
		if item.Product.ID == productID {
			return true
		}
	}
	return false
}
