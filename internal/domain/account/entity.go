// internal/domain/account/entity.go
package account

import (
	"encoding/json"
	"net/http"
	"strings"
)

// OTPLength is the number of digits in every one-time password
const OTPLength = 6

// OTPPolicy is the expiry policy shown next to every OTP field. Expiry itself is
// enforced by the backend only.
const OTPPolicy = "Expires in 5 minutes"

// Role is a granted authority. The backend reports roles either as plain
// strings or as {"authority": "..."} objects.
type Role string

// UnmarshalJSON accepts both role encodings
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = Role(s)
		return nil
	}
	var obj struct {
		Authority string `json:"authority"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = Role(obj.Authority)
	return nil
}

// Session describes the logged-in shopper
type Session struct {
	Username    string `json:"username"`
	Roles       []Role `json:"roles"`
	DisplayName string `json:"displayName,omitempty"`
}

// HasRole reports whether the session carries role, with or without the ROLE_ prefix
func (s *Session) HasRole(role string) bool {
	want := strings.TrimPrefix(strings.ToUpper(role), "ROLE_")
	for _, r := range s.Roles {
		if strings.TrimPrefix(strings.ToUpper(string(r)), "ROLE_") == want {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the shopper may use the admin pages
func (s *Session) IsAdmin() bool {
	return s.HasRole("ADMIN")
}

// LoginResult is a successful login: the session plus the backend cookies that
// must be handed to the browser
type LoginResult struct {
	Session  Session        `json:"session"`
	Redirect string         `json:"redirect"`
	Cookies  []*http.Cookie `json:"-"`
}

// RegistrationForm is the sign-up form
type RegistrationForm struct {
	FirstName       string `json:"firstName" binding:"required,max=100"`
	LastName        string `json:"lastName" binding:"max=100"`
	Email           string `json:"email" binding:"required,email"`
	PhoneNumber     string `json:"phoneNumber" binding:"max=20"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	PreferredSize   string `json:"preferredSize"`
	Gender          string `json:"gender"`
	DateOfBirth     string `json:"dateOfBirth"`
	TermsAccepted   bool   `json:"termsAccepted"`
	NewsletterOptIn bool   `json:"newsletterOptIn"`
}

// OtpContext is the state threaded between the steps of an OTP flow
type OtpContext struct {
	Email    string `json:"email,omitempty"`
	OTP      string `json:"otp,omitempty"`
	NewEmail string `json:"newEmail,omitempty"`
}

// StepResult tells the caller where the flow goes next
type StepResult struct {
	Message   string `json:"message,omitempty"`
	Next      string `json:"next"`
	Email     string `json:"email,omitempty"`
	OTPPolicy string `json:"otpPolicy,omitempty"`

	// FlowID identifies the flow record to continue from, empty once the flow is done
	FlowID string `json:"-"`
}
