// Package admin backs the store administration pages: inventory, orders,
// review moderation, contact messages and the admin's own credentials.
// All data belongs to the backend; every mutation is followed by a refetch.
package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/your-org/boutique-storefront/internal/domain/catalog"
	"github.com/your-org/boutique-storefront/internal/domain/customer"
	"github.com/your-org/boutique-storefront/internal/pkg/apperr"
	"github.com/your-org/boutique-storefront/internal/pkg/auth"
)

// Backend is the admin part of the boutique API
type Backend interface {
	AdminStatus(ctx context.Context) (*Status, error)

	AdminProducts(ctx context.Context, category string) ([]catalog.Product, error)
	CreateProduct(ctx context.Context, p catalog.Product) (*catalog.Product, error)
	UpdateProduct(ctx context.Context, id int64, p catalog.Product) (*catalog.Product, error)
	DeleteProduct(ctx context.Context, id int64) (string, error)

	AdminOrders(ctx context.Context) ([]customer.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) (string, error)
	FinalizeReturn(ctx context.Context, id int64) (string, error)

	UnapprovedReviews(ctx context.Context) ([]catalog.Review, error)
	ApproveReview(ctx context.Context, id int64) (string, error)
	DeleteReview(ctx context.Context, id int64) (string, error)

	ContactMessages(ctx context.Context) ([]ContactMessage, error)
	DeleteContactMessage(ctx context.Context, id int64) error

	UpdateCredentials(ctx context.Context, u CredentialsUpdate) (string, error)
}

// Service handles the admin pages
type Service struct {
	backend Backend
}

// NewService creates a new admin service
func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// ProductsResponse is the refetched inventory
type ProductsResponse struct {
	Products []catalog.ProductView `json:"products"`
	Total    int                   `json:"total"`
	Message  string                `json:"message,omitempty"`
}

// OrdersResponse is the refetched order list
type OrdersResponse struct {
	Orders   []customer.Order `json:"orders"`
	Statuses []string         `json:"statuses"`
	Message  string           `json:"message,omitempty"`
}

// ReviewsResponse is the refetched moderation queue
type ReviewsResponse struct {
	Reviews []catalog.Review `json:"reviews"`
	Message string           `json:"message,omitempty"`
}

// ContactsResponse is the refetched inbox
type ContactsResponse struct {
	Contacts []ContactMessage `json:"contacts"`
	Message  string           `json:"message,omitempty"`
}

// GetStatus returns the dashboard status
func (s *Service) GetStatus(ctx context.Context) (*Status, error) {
	status, err := s.backend.AdminStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin status: %w", err)
	}
	return status, nil
}

// GetProducts returns the inventory, newest first
func (s *Service) GetProducts(ctx context.Context, category string) (*ProductsResponse, error) {
	products, err := s.backend.AdminProducts(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	sorted := catalog.FilterSort(products, catalog.DefaultCriteria())
	return &ProductsResponse{
		Products: catalog.NewProductViews(sorted),
		Total:    len(sorted),
	}, nil
}

// CreateProduct adds a product to the catalog
func (s *Service) CreateProduct(ctx context.Context, p catalog.Product) (*ProductsResponse, error) {
	if err := ValidateProduct(p); err != nil {
		return nil, err
	}
	p.ID = 0

	if _, err := s.backend.CreateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return s.refetchProducts(ctx, "Product created.")
}

// UpdateProduct replaces a product
func (s *Service) UpdateProduct(ctx context.Context, id int64, p catalog.Product) (*ProductsResponse, error) {
	if id <= 0 {
		return nil, apperr.Validation("Invalid product ID")
	}
	if err := ValidateProduct(p); err != nil {
		return nil, err
	}
	p.ID = id

	if _, err := s.backend.UpdateProduct(ctx, id, p); err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	return s.refetchProducts(ctx, "Product updated.")
}

// DeleteProduct removes a product
func (s *Service) DeleteProduct(ctx context.Context, id int64) (*ProductsResponse, error) {
	if id <= 0 {
		return nil, apperr.Validation("Invalid product ID")
	}

	msg, err := s.backend.DeleteProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return s.refetchProducts(ctx, msg)
}

// ValidateProduct checks the fields the storefront relies on
func ValidateProduct(p catalog.Product) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return apperr.Validation("Product name is required")
	case strings.TrimSpace(p.Category) == "":
		return apperr.Validation("Category is required")
	case p.Price < 0:
		return apperr.Validation("Price cannot be negative")
	case p.DiscountPercent < 0 || p.DiscountPercent > 100:
		return apperr.Validation("Discount must be between 0 and 100")
	case p.StockQuantity < 0:
		return apperr.Validation("Stock quantity cannot be negative")
	}
	return nil
}

// GetOrders returns every order
func (s *Service) GetOrders(ctx context.Context) (*OrdersResponse, error) {
	orders, err := s.backend.AdminOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	if orders == nil {
		orders = []customer.Order{}
	}
	return &OrdersResponse{Orders: orders, Statuses: customer.OrderStatuses}, nil
}

// UpdateOrderStatus moves an order to status
func (s *Service) UpdateOrderStatus(ctx context.Context, id int64, status string) (*OrdersResponse, error) {
	if id <= 0 {
		return nil, apperr.Validation("Invalid order ID")
	}
	status = strings.ToUpper(strings.TrimSpace(status))
	if !customer.IsValidOrderStatus(status) {
		return nil, apperr.Validation(fmt.Sprintf("Unknown order status %q", status))
	}

	msg, err := s.backend.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update order %d: %w", id, err)
	}
	return s.refetchOrders(ctx, msg)
}

// FinalizeReturn marks a return-requested order as returned
func (s *Service) FinalizeReturn(ctx context.Context, id int64) (*OrdersResponse, error) {
	if id <= 0 {
		return nil, apperr.Validation("Invalid order ID")
	}

	msg, err := s.backend.FinalizeReturn(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to finalize return for order %d: %w", id, err)
	}
	return s.refetchOrders(ctx, msg)
}

// GetPendingReviews returns reviews awaiting moderation
func (s *Service) GetPendingReviews(ctx context.Context) (*ReviewsResponse, error) {
	reviews, err := s.backend.UnapprovedReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}
	if reviews == nil {
		reviews = []catalog.Review{}
	}
	return &ReviewsResponse{Reviews: reviews}, nil
}

// ApproveReview publishes a review
func (s *Service) ApproveReview(ctx context.Context, id int64) (*ReviewsResponse, error) {
	if id <= 0 {
		return nil, apperr.Validation("Invalid review ID")
	}

	msg, err := s.backend.ApproveReview(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to approve review %d: %w", id, err)
	}
	return s.refetchReviews(ctx, msg)
}

// DeleteReview rejects a review
func (s *Service) DeleteReview(ctx context.Context, id int64) (*ReviewsResponse, error) {
	if id <= 0 {
		return nil, apperr.Validation("Invalid review ID")
	}

	msg, err := s.backend.DeleteReview(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete review %d: %w", id, err)
	}
	return s.refetchReviews(ctx, msg)
}

// GetContacts returns contact form submissions
func (s *Service) GetContacts(ctx context.Context) (*ContactsResponse, error) {
	contacts, err := s.backend.ContactMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load contact messages: %w", err)
	}
	if contacts == nil {
		contacts = []ContactMessage{}
	}
	return &ContactsResponse{Contacts: contacts}, nil
}

// DeleteContact removes a contact form submission
func (s *Service) DeleteContact(ctx context.Context, id int64) (*ContactsResponse, error) {
	if id <= 0 {
		return nil, apperr.Validation("Invalid message ID")
	}

	if err := s.backend.DeleteContactMessage(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete contact message %d: %w", id, err)
	}
	resp, err := s.GetContacts(ctx)
	if err != nil {
		return nil, err
	}
	resp.Message = "Message deleted."
	return resp, nil
}

// UpdateCredentials replaces the admin's username and password.
// The new password must satisfy the registration policy.
func (s *Service) UpdateCredentials(ctx context.Context, u CredentialsUpdate) (string, error) {
	u.NewUsername = strings.TrimSpace(u.NewUsername)
	if u.NewUsername == "" {
		return "", apperr.Validation("New username is required")
	}
	if err := auth.ValidateRegistrationPassword(u.NewPassword); err != nil {
		return "", apperr.Validation(err.Error())
	}

	msg, err := s.backend.UpdateCredentials(ctx, u)
	if err != nil {
		return "", fmt.Errorf("failed to update credentials: %w", err)
	}
	return msg, nil
}

func (s *Service) refetchProducts(ctx context.Context, msg string) (*ProductsResponse, error) {
	resp, err := s.GetProducts(ctx, "")
	if err != nil {
		return nil, err
	}
	resp.Message = msg
	return resp, nil
}

func (s *Service) refetchOrders(ctx context.Context, msg string) (*OrdersResponse, error) {
	resp, err := s.GetOrders(ctx)
	if err != nil {
		return nil, err
	}
	resp.Message = msg
	return resp, nil
}

func (s *Service) refetchReviews(ctx context.Context, msg string) (*ReviewsResponse, error) {
	resp, err := s.GetPendingReviews(ctx)
	if err != nil {
		return nil, err
	}
	resp.Message = msg
	return resp, nil
}
