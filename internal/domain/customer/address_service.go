// internal/domain/customer/address_service.go
package customer

import (
	"context"
	"fmt"
	"strings"

	"github.com/your-org/boutique-storefront/internal/pkg/apperr"
)

// AddressBackend is the address book part of the boutique API
type AddressBackend interface {
	GetAddresses(ctx context.Context) ([]Address, error)
	SaveAddress(ctx context.Context, a Address) (*Address, error)
	DeleteAddress(ctx context.Context, id int64) error
}

// AddressService handles the customer's address book
type AddressService struct {
	backend AddressBackend
}

// NewAddressService creates a new address service
func NewAddressService(backend AddressBackend) *AddressService {
	return &AddressService{backend: backend}
}

// AddressRequest represents address create or update data
type AddressRequest struct {
	FullName     string `json:"fullName" binding:"required"`
	PhoneNumber  string `json:"phoneNumber" binding:"required"`
	AddressLine1 string `json:"addressLine1" binding:"required"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	ZipCode      string `json:"zipCode" binding:"required"`
	AddressType  string `json:"addressType" binding:"omitempty,oneof=HOME WORK OTHER"`
	IsDefault    bool   `json:"isDefault"`
}

// GetUserAddresses retrieves all saved addresses
func (s *AddressService) GetUserAddresses(ctx context.Context) ([]Address, error) {
	addresses, err := s.backend.GetAddresses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load addresses: %w", err)
	}
	if addresses == nil {
		addresses = []Address{}
	}
	return addresses, nil
}

// DefaultAddress returns the address flagged as default, or nil
func DefaultAddress(addresses []Address) *Address {
	for i := range addresses {
		if addresses[i].IsDefault {
			return &addresses[i]
		}
	}
	return nil
}

// CreateAddress saves a new address and returns the refetched address book
func (s *AddressService) CreateAddress(ctx context.Context, req AddressRequest) ([]Address, error) {
	addr, err := s.ValidateAddress(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.backend.SaveAddress(ctx, addr); err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return s.GetUserAddresses(ctx)
}

// UpdateAddress saves an existing address and returns the refetched address book
func (s *AddressService) UpdateAddress(ctx context.Context, id int64, req AddressRequest) ([]Address, error) {
	if id <= 0 {
		return nil, apperr.Validation("Invalid address ID")
	}

	addr, err := s.ValidateAddress(req)
	if err != nil {
		return nil, err
	}
	addr.ID = id

	if _, err := s.backend.SaveAddress(ctx, addr); err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return s.GetUserAddresses(ctx)
}

// DeleteAddress deletes an address and returns the refetched address book
func (s *AddressService) DeleteAddress(ctx context.Context, id int64) ([]Address, error) {
	if id <= 0 {
		return nil, apperr.Validation("Invalid address ID")
	}

	if err := s.backend.DeleteAddress(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete address: %w", err)
	}
	return s.GetUserAddresses(ctx)
}

// ValidateAddress trims the request and checks required fields
func (s *AddressService) ValidateAddress(req AddressRequest) (Address, error) {
	addr := Address{
		FullName:     strings.TrimSpace(req.FullName),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		AddressLine1: strings.TrimSpace(req.AddressLine1),
		AddressLine2: strings.TrimSpace(req.AddressLine2),
		City:         strings.TrimSpace(req.City),
		State:        strings.TrimSpace(req.State),
		ZipCode:      strings.TrimSpace(req.ZipCode),
		AddressType:  strings.ToUpper(strings.TrimSpace(req.AddressType)),
		IsDefault:    req.IsDefault,
	}
	if addr.AddressType == "" {
		addr.AddressType = "HOME"
	}

	switch {
	case addr.FullName == "":
		return addr, apperr.Validation("Full name is required")
	case addr.PhoneNumber == "":
		return addr, apperr.Validation("Phone number is required")
	case addr.AddressLine1 == "":
		return addr, apperr.Validation("Address line 1 is required")
	case addr.City == "":
		return addr, apperr.Validation("City is required")
	case addr.State == "":
		return addr, apperr.Validation("State is required")
	case addr.ZipCode == "":
		return addr, apperr.Validation("ZIP code is required")
	}
	return addr, nil
}
