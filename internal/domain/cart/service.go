// internal/domain/cart/service.go
package cart

import (
	"context"
	"fmt"

	"github.com/your-org/boutique-storefront/internal/pkg/apperr"
)

// Backend is the cart part of the boutique API
type Backend interface {
	GetCart(ctx context.Context) (*Cart, error)
	AddToCart(ctx context.Context, productID int64, quantity int) (string, error)
	UpdateCartItem(ctx context.Context, itemID int64, quantity int) (string, error)
	RemoveCartItem(ctx context.Context, itemID int64) (string, error)
}

// Service handles cart operations. Every mutation is followed by a refetch so the
// shopper always sees the backend's cart.
type Service struct {
	backend Backend
}

// NewService creates a new cart service
func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID int64 `json:"productId" binding:"required,min=1"`
	Quantity  int   `json:"quantity"`
}

// UpdateCartItemRequest represents update cart item request
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart retrieves the shopper's cart
func (s *Service) GetCart(ctx context.Context) (*CartResponse, error) {
	c, err := s.backend.GetCart(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}
	return NewCartResponse(c), nil
}

// AddToCart adds a product; quantity defaults to one
func (s *Service) AddToCart(ctx context.Context, req AddToCartRequest) (*CartResponse, error) {
	if req.ProductID <= 0 {
		return nil, apperr.Validation("Invalid product ID")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		return nil, apperr.Validation("Quantity must be at least 1")
	}

	msg, err := s.backend.AddToCart(ctx, req.ProductID, req.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to add item to cart: %w", err)
	}
	return s.refetch(ctx, msg)
}

// UpdateItem changes a line's quantity; zero removes the line
func (s *Service) UpdateItem(ctx context.Context, itemID int64, quantity int) (*CartResponse, error) {
	if itemID <= 0 {
		return nil, apperr.Validation("Invalid cart item ID")
	}
	if quantity < 0 {
		return nil, apperr.Validation("Quantity cannot be negative")
	}

	msg, err := s.backend.UpdateCartItem(ctx, itemID, quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	return s.refetch(ctx, msg)
}

// RemoveItem removes a line from the cart
func (s *Service) RemoveItem(ctx context.Context, itemID int64) (*CartResponse, error) {
	if itemID <= 0 {
		return nil, apperr.Validation("Invalid cart item ID")
	}

	msg, err := s.backend.RemoveCartItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}
	return s.refetch(ctx, msg)
}

func (s *Service) refetch(ctx context.Context, msg string) (*CartResponse, error) {
	resp, err := s.GetCart(ctx)
	if err != nil {
		return nil, err
	}
	resp.Message = msg
	return resp, nil
}
