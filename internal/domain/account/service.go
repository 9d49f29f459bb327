// internal/domain/account/service.go
package account

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	"github.com/your-org/boutique-storefront/internal/pkg/apperr"
	"github.com/your-org/boutique-storefront/internal/pkg/auth"
	"github.com/your-org/boutique-storefront/internal/pkg/flow"
	"github.com/your-org/boutique-storefront/internal/pkg/logger"
)

// Steps of the account flows
const (
	StepRegister       = "/register"
	StepConfirmOTP     = "/confirm-otp"
	StepLogin          = "/login"
	StepForgotPassword = "/forgot-password"
	StepResetOTP       = "/reset-otp"
	StepResetPassword  = "/reset-password"
	StepProfile        = "/customer/profile"
	StepConfirmEmail   = "/customer/profile/confirm-email"
	StepHome           = "/"
	StepAdminDashboard = "/admin"
)

// MsgInvalidCredentials is shown when the backend rejects a login without saying why
const MsgInvalidCredentials = "Invalid username or password."

// Backend is the part of the boutique API that owns accounts
type Backend interface {
	Register(ctx context.Context, form RegistrationForm) (string, error)
	ConfirmOTP(ctx context.Context, email, otp string) (string, error)
	Login(ctx context.Context, username, password string) (*Session, []*http.Cookie, error)
	Logout(ctx context.Context) ([]*http.Cookie, error)
	Session(ctx context.Context) (*Session, error)
	ForgotPassword(ctx context.Context, identifier string) (email string, msg string, err error)
	VerifyResetOTP(ctx context.Context, email, otp string) (string, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) (string, error)
	RequestEmailChange(ctx context.Context, newEmail string) (string, error)
	FinalizeEmailChange(ctx context.Context, newEmail, otp string) (string, error)
}

// FlowStore keeps OTP context between steps
type FlowStore interface {
	Start(ctx context.Context, kind flow.Kind, payload any) (*flow.Record, error)
	Load(ctx context.Context, id string, kind flow.Kind, out any) (*flow.Record, error)
	Save(ctx context.Context, rec *flow.Record, payload any) error
	Discard(ctx context.Context, id string) error
}

// Service handles registration, login and the OTP flows
type Service struct {
	backend Backend
	flows   FlowStore
}

// NewService creates a new account service
func NewService(backend Backend, flows FlowStore) *Service {
	return &Service{
		backend: backend,
		flows:   flows,
	}
}

// LoginRequest represents the login form
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Redirect string `json:"redirect"`
}

// OTPRequest carries a one-time password
type OTPRequest struct {
	OTP string `json:"otp" binding:"required"`
}

// ForgotPasswordRequest carries an email address or phone number
type ForgotPasswordRequest struct {
	Identifier string `json:"identifier" binding:"required"`
}

// NewPasswordRequest is the reset password form
type NewPasswordRequest struct {
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// ResetPasswordRequest is sent to the backend to finish a recovery
type ResetPasswordRequest struct {
	Email           string `json:"email"`
	OTP             string `json:"otp"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ChangeEmailRequest starts an email change
type ChangeEmailRequest struct {
	NewEmail string `json:"newEmail" binding:"required"`
}

// PasswordStrengthRequest asks for a strength score
type PasswordStrengthRequest struct {
	Password string `json:"password"`
}

// Strength is a password meter reading
type Strength struct {
	Score int    `json:"score"`
	Max   int    `json:"max"`
	Label string `json:"label"`
}

// SanitizeOTP keeps only digits and truncates to OTPLength
func SanitizeOTP(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == OTPLength {
				break
			}
		}
	}
	return b.String()
}

// ValidateOTP sanitizes raw and requires exactly OTPLength digits
func ValidateOTP(raw string) (string, error) {
	otp := SanitizeOTP(raw)
	if len(otp) != OTPLength {
		return "", apperr.Validation(fmt.Sprintf("Please enter the %d-digit code.", OTPLength))
	}
	return otp, nil
}

// PasswordStrength scores password for the strength meter
func PasswordStrength(password string) Strength {
	score := auth.PasswordStrength(password)
	return Strength{Score: score, Max: auth.MaxPasswordStrength, Label: auth.StrengthLabel(score)}
}

// Register validates the sign-up form, creates the account and starts OTP confirmation
func (s *Service) Register(ctx context.Context, form RegistrationForm) (*StepResult, error) {
	form.Email = strings.TrimSpace(form.Email)
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)

	if form.Password != form.ConfirmPassword {
		return nil, apperr.Validation(auth.ErrPasswordMismatch.Error())
	}
	if err := auth.ValidateRegistrationPassword(form.Password); err != nil {
		return nil, apperr.Validation(err.Error())
	}
	if !form.TermsAccepted {
		return nil, apperr.Validation("You must accept the terms and conditions.")
	}
	if err := validateEmail(form.Email); err != nil {
		return nil, err
	}

	msg, err := s.backend.Register(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	rec, err := s.flows.Start(ctx, flow.KindRegistration, OtpContext{Email: form.Email})
	if err != nil {
		return nil, apperr.Infrastructure(err)
	}

	return &StepResult{
		Message:   msg,
		Next:      StepConfirmOTP,
		Email:     form.Email,
		OTPPolicy: OTPPolicy,
		FlowID:    rec.ID,
	}, nil
}

// ConfirmRegistration checks the sign-up OTP for the registration flowID
func (s *Service) ConfirmRegistration(ctx context.Context, flowID, rawOTP string) (*StepResult, error) {
	var oc OtpContext
	rec, err := s.loadFlow(ctx, flowID, flow.KindRegistration, &oc, StepRegister)
	if err != nil {
		return nil, err
	}
	if oc.Email == "" {
		return nil, apperr.Redirect(StepRegister, "Please register to receive a verification code.")
	}

	otp, err := ValidateOTP(rawOTP)
	if err != nil {
		return nil, err
	}

	msg, err := s.backend.ConfirmOTP(ctx, oc.Email, otp)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm registration: %w", err)
	}

	s.discard(ctx, rec.ID)
	return &StepResult{Message: msg, Next: StepLogin, Email: oc.Email}, nil
}

// Login authenticates the shopper. redirect is echoed back only when it is a
// same-site relative path.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperr.Validation("Please enter your username and password.")
	}

	session, cookies, err := s.backend.Login(ctx, username, req.Password)
	if err != nil {
		// rejected credentials are shown next to the form, not treated as an expired session
		if apperr.Is(err, apperr.KindUnauthorized) {
			msg := apperr.As(err).Message
			if msg == apperr.MsgLoginRequired {
				msg = MsgInvalidCredentials
			}
			return nil, apperr.Business(http.StatusUnauthorized, msg)
		}
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	redirect := SafeRedirect(req.Redirect)
	if redirect == "" {
		redirect = StepHome
		if session.IsAdmin() {
			redirect = StepAdminDashboard
		}
	}

	logger.FromContext(ctx).WithField("username", session.Username).Info("User logged in")
	return &LoginResult{Session: *session, Redirect: redirect, Cookies: cookies}, nil
}

// Logout ends the backend session and returns the cookies that clear it
func (s *Service) Logout(ctx context.Context) ([]*http.Cookie, error) {
	cookies, err := s.backend.Logout(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to log out: %w", err)
	}
	return cookies, nil
}

// Session returns the logged-in shopper
func (s *Service) Session(ctx context.Context) (*Session, error) {
	session, err := s.backend.Session(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return session, nil
}

// ForgotPassword sends a reset OTP to the account identified by an email or phone number
func (s *Service) ForgotPassword(ctx context.Context, identifier string) (*StepResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, apperr.Validation("Please enter your email address or phone number.")
	}

	email, msg, err := s.backend.ForgotPassword(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to start password recovery: %w", err)
	}
	if email == "" {
		return nil, apperr.Infrastructure(errors.New("backend did not return the account email"))
	}

	rec, err := s.flows.Start(ctx, flow.KindRecovery, OtpContext{Email: email})
	if err != nil {
		return nil, apperr.Infrastructure(err)
	}

	return &StepResult{
		Message:   msg,
		Next:      StepResetOTP,
		Email:     email,
		OTPPolicy: OTPPolicy,
		FlowID:    rec.ID,
	}, nil
}

// VerifyResetOTP checks the recovery OTP and keeps it for the final reset
func (s *Service) VerifyResetOTP(ctx context.Context, flowID, rawOTP string) (*StepResult, error) {
	var oc OtpContext
	rec, err := s.loadFlow(ctx, flowID, flow.KindRecovery, &oc, StepForgotPassword)
	if err != nil {
		return nil, err
	}
	if oc.Email == "" {
		return nil, apperr.Redirect(StepForgotPassword, "Please start password recovery again.")
	}

	otp, err := ValidateOTP(rawOTP)
	if err != nil {
		return nil, err
	}

	msg, err := s.backend.VerifyResetOTP(ctx, oc.Email, otp)
	if err != nil {
		return nil, fmt.Errorf("failed to verify reset code: %w", err)
	}

	oc.OTP = otp
	if err := s.flows.Save(ctx, rec, oc); err != nil {
		return nil, apperr.Infrastructure(err)
	}

	return &StepResult{Message: msg, Next: StepResetPassword, Email: oc.Email, FlowID: rec.ID}, nil
}

// ResetPassword sets a new password using the verified recovery flow
func (s *Service) ResetPassword(ctx context.Context, flowID string, req NewPasswordRequest) (*StepResult, error) {
	var oc OtpContext
	rec, err := s.loadFlow(ctx, flowID, flow.KindRecovery, &oc, StepForgotPassword)
	if err != nil {
		return nil, err
	}
	if oc.Email == "" || oc.OTP == "" {
		return nil, apperr.Redirect(StepForgotPassword, "Please verify your reset code first.")
	}

	if err := auth.ValidateResetPassword(req.NewPassword); err != nil {
		return nil, apperr.Validation(err.Error())
	}
	if req.NewPassword != req.ConfirmPassword {
		return nil, apperr.Validation(auth.ErrPasswordMismatch.Error())
	}

	msg, err := s.backend.ResetPassword(ctx, ResetPasswordRequest{
		Email:           oc.Email,
		OTP:             oc.OTP,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reset password: %w", err)
	}

	s.discard(ctx, rec.ID)
	return &StepResult{Message: msg, Next: StepLogin}, nil
}

// RequestEmailChange sends an OTP to newEmail and starts the email change flow
func (s *Service) RequestEmailChange(ctx context.Context, newEmail string) (*StepResult, error) {
	newEmail = strings.TrimSpace(newEmail)
	if err := validateEmail(newEmail); err != nil {
		return nil, err
	}

	msg, err := s.backend.RequestEmailChange(ctx, newEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to request email change: %w", err)
	}

	rec, err := s.flows.Start(ctx, flow.KindEmailChange, OtpContext{NewEmail: newEmail})
	if err != nil {
		return nil, apperr.Infrastructure(err)
	}

	return &StepResult{
		Message:   msg,
		Next:      StepConfirmEmail,
		Email:     newEmail,
		OTPPolicy: OTPPolicy,
		FlowID:    rec.ID,
	}, nil
}

// FinalizeEmailChange confirms the new address with its OTP
func (s *Service) FinalizeEmailChange(ctx context.Context, flowID, rawOTP string) (*StepResult, error) {
	var oc OtpContext
	rec, err := s.loadFlow(ctx, flowID, flow.KindEmailChange, &oc, StepProfile)
	if err != nil {
		return nil, err
	}
	if oc.NewEmail == "" {
		return nil, apperr.Redirect(StepProfile, "Please request the email change again.")
	}

	otp, err := ValidateOTP(rawOTP)
	if err != nil {
		return nil, err
	}

	msg, err := s.backend.FinalizeEmailChange(ctx, oc.NewEmail, otp)
	if err != nil {
		return nil, fmt.Errorf("failed to change email: %w", err)
	}

	s.discard(ctx, rec.ID)
	return &StepResult{Message: msg, Next: StepProfile, Email: oc.NewEmail}, nil
}

// SafeRedirect returns path when it is a relative same-site path, otherwise ""
func SafeRedirect(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.ContainsAny(path, "\\\r\n") {
		return ""
	}
	return path
}

func validateEmail(email string) error {
	if email == "" {
		return apperr.Validation("Please enter your email address.")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return apperr.Validation("Please enter a valid email address.")
	}
	return nil
}

func (s *Service) loadFlow(ctx context.Context, flowID string, kind flow.Kind, oc *OtpContext, restart string) (*flow.Record, error) {
	rec, err := s.flows.Load(ctx, flowID, kind, oc)
	if errors.Is(err, flow.ErrNotFound) {
		return nil, apperr.Redirect(restart, "Your session has expired. Please start again.")
	}
	if err != nil {
		return nil, apperr.Infrastructure(err)
	}
	return rec, nil
}

func (s *Service) discard(ctx context.Context, id string) {
	if err := s.flows.Discard(ctx, id); err != nil {
		logger.FromContext(ctx).WithError(err).Warn("Failed to discard completed flow")
	}
}
