package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegistrationPassword(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"Passw0rd!", true},
		{"Aa1@aaaa", true},
		{"Aa1@aaa", false},     // too short
		{"password1!", false},  // no upper
		{"PASSWORD1!", false},  // no lower
		{"Password!!", false},  // no digit
		{"Password11", false},  // no special
		{"Passw0rd#", false},   // # is not an allowed special
		{"Passw0rd! ", false},  // space is not allowed
		{"Pässw0rd!", false},   // non-ASCII letter
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := ValidateRegistrationPassword(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrRegistrationPolicy)
			}
		})
	}
}

func TestValidateResetPassword(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"Passw0rd", true},
		{"abcDEF12345", true},
		{"Passw0r", false},
		{"passw0rd", false},
		{"PASSW0RD", false},
		{"Password", false},
		{"Passw0rd!", false}, // specials are not allowed for reset
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := ValidateResetPassword(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrResetPolicy)
			}
		})
	}
}

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		want     int
		label    string
	}{
		{"", 0, "Weak"},
		{"abc", 1, "Weak"},
		{"abcdefgh", 2, "Weak"},
		{"Abcdefgh", 3, "Medium"},
		{"Abcdefg1", 4, "Medium"},
		{"Abcdef1!", 5, "Strong"},
		{"A1!", 3, "Medium"},
	}

	for _, tt := range tests {
		got := PasswordStrength(tt.password)
		assert.Equal(t, tt.want, got, tt.password)
		assert.Equal(t, tt.label, StrengthLabel(got), tt.password)
	}
}
