package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/your-org/boutique-storefront/internal/domain/account"
)

// registrationBody is the backend's registration payload; the email doubles as the username
type registrationBody struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	PreferredSize   string `json:"preferredSize,omitempty"`
	Gender          string `json:"gender,omitempty"`
	DateOfBirth     string `json:"dateOfBirth,omitempty"`
	TermsAccepted   bool   `json:"termsAccepted"`
	NewsletterOptIn bool   `json:"newsletterOptIn"`
}

type recoveryResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// Register creates an account and triggers the confirmation OTP
func (c *Client) Register(ctx context.Context, form account.RegistrationForm) (string, error) {
	return c.sendMessage(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/register",
		body: registrationBody{
			FirstName:       form.FirstName,
			LastName:        form.LastName,
			Username:        form.Email,
			Email:           form.Email,
			PhoneNumber:     form.PhoneNumber,
			Password:        form.Password,
			ConfirmPassword: form.ConfirmPassword,
			PreferredSize:   form.PreferredSize,
			Gender:          form.Gender,
			DateOfBirth:     form.DateOfBirth,
			TermsAccepted:   form.TermsAccepted,
			NewsletterOptIn: form.NewsletterOptIn,
		},
	})
}

// ConfirmOTP activates a registered account
func (c *Client) ConfirmOTP(ctx context.Context, email, otp string) (string, error) {
	return c.sendMessage(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/confirm-otp",
		form:   url.Values{"email": {email}, "otp": {otp}},
	})
}

// Login opens a backend session and returns the cookies it set
func (c *Client) Login(ctx context.Context, username, password string) (*account.Session, []*http.Cookie, error) {
	var out account.Session
	cookies, err := c.send(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/login",
		form:   url.Values{"username": {username}, "password": {password}},
	}, &out)
	if err != nil {
		return nil, nil, err
	}
	return &out, cookies, nil
}

// Logout ends the backend session and returns the cookies that clear it
func (c *Client) Logout(ctx context.Context) ([]*http.Cookie, error) {
	return c.send(ctx, request{method: http.MethodPost, path: "/api/auth/logout"}, nil)
}

// Session returns the logged-in user
func (c *Client) Session(ctx context.Context) (*account.Session, error) {
	var out account.Session
	if _, err := c.send(ctx, request{method: http.MethodGet, path: "/api/auth/session"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ForgotPassword sends a reset OTP and returns the account's email
func (c *Client) ForgotPassword(ctx context.Context, identifier string) (string, string, error) {
	var out recoveryResponse
	if _, err := c.send(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/forgot-password",
		form:   url.Values{"identifier": {identifier}},
	}, &out); err != nil {
		return "", "", err
	}
	return out.Email, out.Message, nil
}

// VerifyResetOTP checks a password reset OTP
func (c *Client) VerifyResetOTP(ctx context.Context, email, otp string) (string, error) {
	return c.sendMessage(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/verify-reset-otp",
		form:   url.Values{"email": {email}, "otp": {otp}},
	})
}

// ResetPassword sets a new password
func (c *Client) ResetPassword(ctx context.Context, req account.ResetPasswordRequest) (string, error) {
	return c.sendMessage(ctx, request{method: http.MethodPost, path: "/api/auth/reset-password", body: req})
}

// RequestEmailChange sends an OTP to the new address
func (c *Client) RequestEmailChange(ctx context.Context, newEmail string) (string, error) {
	return c.sendMessage(ctx, request{
		method: http.MethodPost,
		path:   "/api/customer/profile/change-email",
		body:   map[string]string{"newEmail": newEmail},
	})
}

// FinalizeEmailChange confirms the new address
func (c *Client) FinalizeEmailChange(ctx context.Context, newEmail, otp string) (string, error) {
	return c.sendMessage(ctx, request{
		method: http.MethodPost,
		path:   "/api/customer/profile/change-email/finalize",
		body:   map[string]string{"newEmail": newEmail, "otp": otp},
	})
}
