// internal/interfaces/http/handlers/user_admin.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/boutique-storefront/internal/domain/admin"
	"github.com/your-org/boutique-storefront/internal/domain/catalog"
)

// UserAdminHandler handles the store owner's endpoints. Authorization is the
// backend's call; a non-admin session gets its 403 back verbatim.
type UserAdminHandler struct {
	adminService *admin.Service
}

// NewUserAdminHandler creates a new user admin handler
func NewUserAdminHandler(adminService *admin.Service) *UserAdminHandler {
	return &UserAdminHandler{adminService: adminService}
}

// GetStatus handles GET /admin/status
func (h *UserAdminHandler) GetStatus(c *gin.Context) {
	status, err := h.adminService.GetStatus(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status retrieved successfully",
		"data":    status,
	})
}

// GetProducts handles GET /admin/products
func (h *UserAdminHandler) GetProducts(c *gin.Context) {
	products, err := h.adminService.GetProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
	})
}

// CreateProduct handles POST /admin/products
func (h *UserAdminHandler) CreateProduct(c *gin.Context) {
	var product catalog.Product
	if !bindJSON(c, &product) {
		return
	}

	products, err := h.adminService.CreateProduct(c.Request.Context(), product)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": products.Message,
		"data":    products,
	})
}

// UpdateProduct handles PUT /admin/products/:id
func (h *UserAdminHandler) UpdateProduct(c *gin.Context) {
	productID, ok := parseID(c, "id", "product ID")
	if !ok {
		return
	}

	var product catalog.Product
	if !bindJSON(c, &product) {
		return
	}

	products, err := h.adminService.UpdateProduct(c.Request.Context(), productID, product)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": products.Message,
		"data":    products,
	})
}

// DeleteProduct handles DELETE /admin/products/:id
func (h *UserAdminHandler) DeleteProduct(c *gin.Context) {
	productID, ok := parseID(c, "id", "product ID")
	if !ok {
		return
	}

	products, err := h.adminService.DeleteProduct(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": products.Message,
		"data":    products,
	})
}

// GetOrders handles GET /admin/orders
func (h *UserAdminHandler) GetOrders(c *gin.Context) {
	orders, err := h.adminService.GetOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    orders,
	})
}

// UpdateOrderStatus handles PUT /admin/orders/:id/status
func (h *UserAdminHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseID(c, "id", "order ID")
	if !ok {
		return
	}

	var req admin.OrderStatusUpdate
	if !bindJSON(c, &req) {
		return
	}

	orders, err := h.adminService.UpdateOrderStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": orders.Message,
		"data":    orders,
	})
}

// FinalizeReturn handles POST /admin/orders/:id/finalize-return
func (h *UserAdminHandler) FinalizeReturn(c *gin.Context) {
	orderID, ok := parseID(c, "id", "order ID")
	if !ok {
		return
	}

	orders, err := h.adminService.FinalizeReturn(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": orders.Message,
		"data":    orders,
	})
}

// GetPendingReviews handles GET /admin/reviews
func (h *UserAdminHandler) GetPendingReviews(c *gin.Context) {
	reviews, err := h.adminService.GetPendingReviews(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reviews retrieved successfully",
		"data":    reviews,
	})
}

// ApproveReview handles POST /admin/reviews/:id/approve
func (h *UserAdminHandler) ApproveReview(c *gin.Context) {
	reviewID, ok := parseID(c, "id", "review ID")
	if !ok {
		return
	}

	reviews, err := h.adminService.ApproveReview(c.Request.Context(), reviewID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": reviews.Message,
		"data":    reviews,
	})
}

// DeleteReview handles DELETE /admin/reviews/:id
func (h *UserAdminHandler) DeleteReview(c *gin.Context) {
	reviewID, ok := parseID(c, "id", "review ID")
	if !ok {
		return
	}

	reviews, err := h.adminService.DeleteReview(c.Request.Context(), reviewID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": reviews.Message,
		"data":    reviews,
	})
}

// GetContacts handles GET /admin/contacts
func (h *UserAdminHandler) GetContacts(c *gin.Context) {
	contacts, err := h.adminService.GetContacts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Messages retrieved successfully",
		"data":    contacts,
	})
}

// DeleteContact handles DELETE /admin/contacts/:id
func (h *UserAdminHandler) DeleteContact(c *gin.Context) {
	contactID, ok := parseID(c, "id", "message ID")
	if !ok {
		return
	}

	contacts, err := h.adminService.DeleteContact(c.Request.Context(), contactID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": contacts.Message,
		"data":    contacts,
	})
}

// UpdateCredentials handles PUT /admin/profile. The backend ends the session,
// so the client is told to log in again.
func (h *UserAdminHandler) UpdateCredentials(c *gin.Context) {
	var req admin.CredentialsUpdate
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.adminService.UpdateCredentials(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": msg,
		"data": gin.H{
			"next": "/login",
		},
	})
}
