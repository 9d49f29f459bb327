// internal/interfaces/http/handlers/user_address.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/boutique-storefront/internal/domain/customer"
)

// UserAddressHandler handles saved address endpoints
type UserAddressHandler struct {
	addressService *customer.AddressService
}

// NewUserAddressHandler creates a new user address handler
func NewUserAddressHandler(addressService *customer.AddressService) *UserAddressHandler {
	return &UserAddressHandler{addressService: addressService}
}

// GetAddresses handles GET /customer/addresses
func (h *UserAddressHandler) GetAddresses(c *gin.Context) {
	addresses, err := h.addressService.GetUserAddresses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Addresses retrieved successfully",
		"data": gin.H{
			"addresses": addresses,
			"default":   customer.DefaultAddress(addresses),
		},
	})
}

// CreateAddress handles POST /customer/addresses
func (h *UserAddressHandler) CreateAddress(c *gin.Context) {
	var req customer.AddressRequest
	if !bindJSON(c, &req) {
		return
	}

	addresses, err := h.addressService.CreateAddress(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Address created successfully",
		"data":    addresses,
	})
}

// UpdateAddress handles PUT /customer/addresses/:id
func (h *UserAddressHandler) UpdateAddress(c *gin.Context) {
	addressID, ok := parseID(c, "id", "address ID")
	if !ok {
		return
	}

	var req customer.AddressRequest
	if !bindJSON(c, &req) {
		return
	}

	addresses, err := h.addressService.UpdateAddress(c.Request.Context(), addressID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address updated successfully",
		"data":    addresses,
	})
}

// DeleteAddress handles DELETE /customer/addresses/:id
func (h *UserAddressHandler) DeleteAddress(c *gin.Context) {
	addressID, ok := parseID(c, "id", "address ID")
	if !ok {
		return
	}

	addresses, err := h.addressService.DeleteAddress(c.Request.Context(), addressID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address deleted successfully",
		"data":    addresses,
	})
}
