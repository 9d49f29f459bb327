// internal/domain/customer/entity.go
package customer

import "github.com/your-org/boutique-storefront/internal/domain/catalog"

// Profile is the customer's account profile
type Profile struct {
	Username    string `json:"username,omitempty"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// GetFullName returns the customer's full name
func (p *Profile) GetFullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Address is a saved shipping address
type Address struct {
	ID           int64  `json:"id,omitempty"`
	FullName     string `json:"fullName"`
	PhoneNumber  string `json:"phoneNumber"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	AddressType  string `json:"addressType"`
	IsDefault    bool   `json:"isDefault"`
}

// OrderItem is a line of a placed order
type OrderItem struct {
	ID       int64           `json:"id"`
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Price    float64         `json:"price"`
}

// OrderCustomer identifies who placed an order
type OrderCustomer struct {
	Username string `json:"username"`
}

// Order is a placed order as reported by the backend
type Order struct {
	ID          int64          `json:"id"`
	OrderDate   string         `json:"orderDate"`
	Status      string         `json:"status"`
	TotalAmount float64        `json:"totalAmount"`
	PaymentMode string         `json:"paymentMode,omitempty"`
	Items       []OrderItem    `json:"items,omitempty"`
	User        *OrderCustomer `json:"user,omitempty"`
}

// Order statuses
const (
	OrderStatusPending         = "PENDING"
	OrderStatusShipped         = "SHIPPED"
	OrderStatusOutForDelivery  = "OUT_FOR_DELIVERY"
	OrderStatusDelivered       = "DELIVERED"
	OrderStatusReturnRequested = "RETURN_REQUESTED"
	OrderStatusReturned        = "RETURNED"
	OrderStatusCancelled       = "CANCELLED"
)

// OrderStatuses lists every status an order can be moved to
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusShipped,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusReturnRequested,
	OrderStatusReturned,
	OrderStatusCancelled,
}

// IsValidOrderStatus reports whether status is a known order status
func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CanRequestReturn reports whether the customer may ask to return the order
func (o Order) CanRequestReturn() bool {
	return o.Status == OrderStatusDelivered
}

// Coupon is an active promotional coupon
type Coupon struct {
	ID            int64   `json:"id"`
	Code          string  `json:"code"`
	Description   string  `json:"description"`
	DiscountType  string  `json:"discountType"`
	DiscountValue float64 `json:"discountValue"`
	ExpiryDate    string  `json:"expiryDate"`
}

// GiftCard is a gift card owned by the customer
type GiftCard struct {
	ID             int64   `json:"id"`
	CardNumber     string  `json:"cardNumber"`
	CurrentBalance float64 `json:"currentBalance"`
	ExpirationDate string  `json:"expirationDate"`
}
