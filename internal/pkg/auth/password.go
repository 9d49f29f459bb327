// internal/pkg/auth/password.go
package auth

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password either policy accepts
const MinPasswordLength = 8

// PasswordSpecials are the only special characters a registration password may use
const PasswordSpecials = "@$!%*?&"

// MaxPasswordStrength is the top of the strength meter
const MaxPasswordStrength = 5

var (
	ErrPasswordMismatch = errors.New("Passwords do not match.")

	ErrRegistrationPolicy = errors.New("Password does not meet security requirements.")

	ErrResetPolicy = errors.New("Password must be 8+ characters and contain at least one uppercase letter, one lowercase letter, and one number.")
)

type charClasses struct {
	upper, lower, digit, special, other bool
}

func classify(password string) charClasses {
	var c charClasses
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			c.upper = true
		case r >= 'a' && r <= 'z':
			c.lower = true
		case r >= '0' && r <= '9':
			c.digit = true
		case strings.ContainsRune(PasswordSpecials, r):
			c.special = true
		default:
			c.other = true
		}
	}
	return c
}

// ValidateRegistrationPassword requires 8+ characters drawn only from ASCII letters, digits
// and PasswordSpecials, with at least one of each
func ValidateRegistrationPassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrRegistrationPolicy
	}
	c := classify(password)
	if !c.upper || !c.lower || !c.digit || !c.special || c.other {
		return ErrRegistrationPolicy
	}
	return nil
}

// ValidateResetPassword requires 8+ ASCII letters and digits with at least one uppercase
// letter, one lowercase letter and one digit
func ValidateResetPassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrResetPolicy
	}
	c := classify(password)
	if !c.upper || !c.lower || !c.digit || c.special || c.other {
		return ErrResetPolicy
	}
	return nil
}

// PasswordStrength scores a password from 0 to MaxPasswordStrength, one point each for
// length, uppercase, lowercase, digit and special character
func PasswordStrength(password string) int {
	strength := 0
	if utf8.RuneCountInString(password) >= MinPasswordLength {
		strength++
	}
	c := classify(password)
	for _, ok := range []bool{c.upper, c.lower, c.digit, c.special} {
		if ok {
			strength++
		}
	}
	return strength
}

// StrengthLabel names a strength score for display
func StrengthLabel(strength int) string {
	switch {
	case strength <= 2:
		return "Weak"
	case strength <= 4:
		return "Medium"
	default:
		return "Strong"
	}
}
