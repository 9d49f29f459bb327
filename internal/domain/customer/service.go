// internal/domain/customer/service.go
package customer

import (
	"context"
	"fmt"
	"strings"

	"github.com/your-org/boutique-storefront/internal/pkg/apperr"
)

// GiftCardCodeLength is the minimum length of a redeemable gift card code
const GiftCardCodeLength = 16

// Backend is the customer account part of the boutique API
type Backend interface {
	GetProfile(ctx context.Context) (*Profile, error)
	UpdateProfile(ctx context.Context, p Profile) (string, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) (string, error)
	GetOrders(ctx context.Context) ([]Order, error)
	RequestReturn(ctx context.Context, orderID int64) (string, error)
	GetCoupons(ctx context.Context) ([]Coupon, error)
	GetGiftCards(ctx context.Context) ([]GiftCard, error)
	RedeemGiftCard(ctx context.Context, code string) (string, error)

	AddressBackend
}

// Service handles the customer's account pages
type Service struct {
	backend Backend
}

// NewService creates a new customer service
func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	FirstName   string `json:"firstName" binding:"required,max=100"`
	LastName    string `json:"lastName" binding:"max=100"`
	Email       string `json:"email" binding:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber" binding:"max=20"`
}

// ChangePasswordRequest represents password change data
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// RedeemGiftCardRequest represents a gift card redemption
type RedeemGiftCardRequest struct {
	Code string `json:"code" binding:"required"`
}

// OrdersResponse is the refetched order history
type OrdersResponse struct {
	Orders  []Order `json:"orders"`
	Message string  `json:"message,omitempty"`
}

// GiftCardsResponse is the refetched gift card list
type GiftCardsResponse struct {
	GiftCards    []GiftCard `json:"giftCards"`
	TotalBalance float64    `json:"totalBalance"`
	Message      string     `json:"message,omitempty"`
}

// GetProfile retrieves the customer's profile
func (s *Service) GetProfile(ctx context.Context) (*Profile, error) {
	profile, err := s.backend.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile saves the profile and returns the refetched copy
func (s *Service) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*Profile, string, error) {
	if strings.TrimSpace(req.FirstName) == "" {
		return nil, "", apperr.Validation("First name is required")
	}

	msg, err := s.backend.UpdateProfile(ctx, Profile{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       strings.TrimSpace(req.Email),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to update profile: %w", err)
	}

	profile, err := s.GetProfile(ctx)
	if err != nil {
		return nil, "", err
	}
	return profile, msg, nil
}

// ChangePassword changes the password after checking the confirmation locally
func (s *Service) ChangePassword(ctx context.Context, req ChangePasswordRequest) (string, error) {
	if req.NewPassword != req.ConfirmPassword {
		return "", apperr.Validation("New passwords do not match.")
	}
	if req.CurrentPassword == "" {
		return "", apperr.Validation("Current password is required")
	}

	msg, err := s.backend.ChangePassword(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to change password: %w", err)
	}
	return msg, nil
}

// GetOrders retrieves the order history
func (s *Service) GetOrders(ctx context.Context) (*OrdersResponse, error) {
	orders, err := s.backend.GetOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	if orders == nil {
		orders = []Order{}
	}
	return &OrdersResponse{Orders: orders}, nil
}

// RequestReturn asks for an order to be returned and returns the refetched history
func (s *Service) RequestReturn(ctx context.Context, orderID int64) (*OrdersResponse, error) {
	if orderID <= 0 {
		return nil, apperr.Validation("Invalid order ID")
	}

	msg, err := s.backend.RequestReturn(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to request return for order %d: %w", orderID, err)
	}

	resp, err := s.GetOrders(ctx)
	if err != nil {
		return nil, err
	}
	resp.Message = msg
	return resp, nil
}

// GetCoupons retrieves the active coupons
func (s *Service) GetCoupons(ctx context.Context) ([]Coupon, error) {
	coupons, err := s.backend.GetCoupons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load coupons: %w", err)
	}
	if coupons == nil {
		coupons = []Coupon{}
	}
	return coupons, nil
}

// GetGiftCards retrieves the customer's gift cards
func (s *Service) GetGiftCards(ctx context.Context) (*GiftCardsResponse, error) {
	cards, err := s.backend.GetGiftCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load gift cards: %w", err)
	}

	resp := &GiftCardsResponse{GiftCards: cards}
	if resp.GiftCards == nil {
		resp.GiftCards = []GiftCard{}
	}
	for _, c := range cards {
		resp.TotalBalance += c.CurrentBalance
	}
	return resp, nil
}

// RedeemGiftCard redeems a code and returns the refetched gift cards
func (s *Service) RedeemGiftCard(ctx context.Context, code string) (*GiftCardsResponse, error) {
	code = strings.TrimSpace(code)
	if len(code) < GiftCardCodeLength {
		return nil, apperr.Validation("Please enter a valid 16-digit gift card number.")
	}

	msg, err := s.backend.RedeemGiftCard(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to redeem gift card: %w", err)
	}

	resp, err := s.GetGiftCards(ctx)
	if err != nil {
		return nil, err
	}
	resp.Message = msg
	return resp, nil
}
