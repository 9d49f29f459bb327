// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/boutique-storefront/internal/domain/wishlist"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	wishlistService *wishlist.Service
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlistService *wishlist.Service) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	response, err := h.wishlistService.GetWishlist(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist retrieved successfully",
		"data":    response,
	})
}

// AddToWishlist handles POST /wishlist
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	var req wishlist.AddToWishlistRequest
	if !bindJSON(c, &req) {
		return
	}

	response, err := h.wishlistService.AddToWishlist(c.Request.Context(), req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": response.Message,
		"data":    response,
	})
}

// RemoveFromWishlist handles DELETE /wishlist/:productId
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	productID, ok := parseID(c, "productId", "product ID")
	if !ok {
		return
	}

	response, err := h.wishlistService.RemoveFromWishlist(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": response.Message,
		"data":    response,
	})
}

// MoveToCart handles POST /wishlist/:productId/move-to-cart
func (h *WishlistHandler) MoveToCart(c *gin.Context) {
	productID, ok := parseID(c, "productId", "product ID")
	if !ok {
		return
	}

	// body is optional, quantity defaults to one
	var req wishlist.MoveToCartRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	response, err := h.wishlistService.MoveToCart(c.Request.Context(), productID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": response.Message,
		"data":    response,
	})
}
