package wishlist

import (
	"context"
	"fmt"

	"github.com/your-org/boutique-storefront/internal/domain/catalog"
	"github.com/your-org/boutique-storefront/internal/pkg/apperr"
)

// Backend is the wishlist part of the boutique API
type Backend interface {
	GetWishlist(ctx context.Context) ([]WishlistItem, error)
	AddToWishlist(ctx context.Context, productID int64) (string, error)
	RemoveFromWishlist(ctx context.Context, productID int64) (string, error)
	AddToCart(ctx context.Context, productID int64, quantity int) (string, error)
}

// Service handles wishlist operations
type Service struct {
	backend Backend
}

// NewService creates a new wishlist service
func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// AddToWishlistRequest represents add to wishlist request
type AddToWishlistRequest struct {
	ProductID int64 `json:"productId" binding:"required,min=1"`
}

// MoveToCartRequest represents a move from wishlist to cart
type MoveToCartRequest struct {
	Quantity int `json:"quantity"`
}

// GetWishlist retrieves the shopper's wishlist
func (s *Service) GetWishlist(ctx context.Context) (*WishlistResponse, error) {
	items, err := s.backend.GetWishlist(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve wishlist: %w", err)
	}

	resp := &WishlistResponse{Items: make([]WishlistItemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, WishlistItemResponse{
			ID:      item.ID,
			Product: catalog.NewProductView(item.Product),
		})
	}
	resp.Count = len(resp.Items)
	return resp, nil
}

// AddToWishlist adds a product and returns the refetched wishlist
func (s *Service) AddToWishlist(ctx context.Context, productID int64) (*WishlistResponse, error) {
	if productID <= 0 {
		return nil, apperr.Validation("Invalid product ID")
	}

	msg, err := s.backend.AddToWishlist(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to add to wishlist: %w", err)
	}
	return s.refetch(ctx, msg)
}

// RemoveFromWishlist removes a product and returns the refetched wishlist
func (s *Service) RemoveFromWishlist(ctx context.Context, productID int64) (*WishlistResponse, error) {
	if productID <= 0 {
		return nil, apperr.Validation("Invalid product ID")
	}

	msg, err := s.backend.RemoveFromWishlist(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove from wishlist: %w", err)
	}
	return s.refetch(ctx, msg)
}

// MoveToCart adds the product to the cart, then drops it from the wishlist.
// If the cart rejects the product the wishlist is left untouched.
func (s *Service) MoveToCart(ctx context.Context, productID int64, quantity int) (*WishlistResponse, error) {
	if productID <= 0 {
		return nil, apperr.Validation("Invalid product ID")
	}
	if quantity <= 0 {
		quantity = 1
	}

	if _, err := s.backend.AddToCart(ctx, productID, quantity); err != nil {
		return nil, fmt.Errorf("failed to add item to cart: %w", err)
	}
	if _, err := s.backend.RemoveFromWishlist(ctx, productID); err != nil {
		return nil, fmt.Errorf("failed to remove from wishlist: %w", err)
	}
	return s.refetch(ctx, "Item moved to cart.")
}

func (s *Service) refetch(ctx context.Context, msg string) (*WishlistResponse, error) {
	resp, err := s.GetWishlist(ctx)
	if err != nil {
		return nil, err
	}
	resp.Message = msg
	return resp, nil
}
