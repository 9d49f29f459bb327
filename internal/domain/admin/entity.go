package admin

// Status is the admin dashboard status
type Status struct {
	Username              string `json:"username"`
	NeedsCredentialUpdate bool   `json:"needsCredentialUpdate"`
}

// ContactMessage is a message left through the public contact form
type ContactMessage struct {
	ID            int64  `json:"id"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
	Message       string `json:"message"`
	DateSubmitted string `json:"dateSubmitted,omitempty"`
}

// CredentialsUpdate replaces the admin's login credentials
type CredentialsUpdate struct {
	NewUsername         string `json:"newUsername" binding:"required,min=3"`
	NewPassword         string `json:"newPassword" binding:"required"`
	RecoveryPhoneNumber string `json:"recoveryPhoneNumber"`
}

// OrderStatusUpdate moves an order to a new status
type OrderStatusUpdate struct {
	Status string `json:"status" binding:"required"`
}
