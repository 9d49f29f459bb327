// internal/domain/site/service.go
package site

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/your-org/boutique-storefront/internal/pkg/apperr"
)

// ContactRequest is the public contact form
type ContactRequest struct {
	FullName    string `json:"fullName" binding:"required,max=120"`
	Email       string `json:"email" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"max=20"`
	Message     string `json:"message" binding:"required,max=2000"`
}

// SubscribeRequest is the footer newsletter form
type SubscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

// Backend is the public part of the boutique API
type Backend interface {
	SubmitContact(ctx context.Context, req ContactRequest) (string, error)
	Subscribe(ctx context.Context, email string) (string, error)
	Policies(ctx context.Context) (map[string]string, error)
}

// Service handles the public forms
type Service struct {
	backend Backend
}

// NewService creates a new site service
func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// SubmitContact forwards a contact form submission
func (s *Service) SubmitContact(ctx context.Context, req ContactRequest) (string, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	req.Message = strings.TrimSpace(req.Message)

	if req.FullName == "" || req.Message == "" {
		return "", apperr.Validation("Please fill in your name and message.")
	}
	if !validEmail(req.Email) {
		return "", apperr.Validation("Please enter a valid email address.")
	}

	msg, err := s.backend.SubmitContact(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to submit contact message: %w", err)
	}
	return msg, nil
}

// Subscribe adds email to the newsletter
func (s *Service) Subscribe(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if !validEmail(email) {
		return "", apperr.Validation("Please enter a valid email address.")
	}

	msg, err := s.backend.Subscribe(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to subscribe: %w", err)
	}
	return msg, nil
}

// Policies returns the policy page links
func (s *Service) Policies(ctx context.Context) (map[string]string, error) {
	policies, err := s.backend.Policies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load policies: %w", err)
	}
	if policies == nil {
		policies = map[string]string{}
	}
	return policies, nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
