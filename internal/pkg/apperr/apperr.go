// Package apperr classifies every failure the storefront can surface so handlers can
// respond consistently: what the user must fix, what they must log in for, and what
// is simply not their fault.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the category of an error as seen by the shopper
type Kind string

const (
	KindValidation     Kind = "validation"
	KindUnauthorized   Kind = "unauthorized"
	KindForbidden      Kind = "forbidden"
	KindBusiness       Kind = "business"
	KindInfrastructure Kind = "infrastructure"
	KindProvider       Kind = "provider"
	KindRedirect       Kind = "redirect"
	KindConflict       Kind = "conflict"
)

// GenericInfrastructureMessage is shown whenever the failure is on our side
const GenericInfrastructureMessage = "We're having trouble reaching the store right now. Please try again in a moment."

// Error is a classified storefront error
type Error struct {
	Kind     Kind
	Status   int
	Message  string
	Redirect string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Validation is a client-detected problem; no backend call was made
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg}
}

// MsgLoginRequired is the message of an Unauthorized error created without one
const MsgLoginRequired = "Please log in to continue."

// Unauthorized asks the shopper to log in and come back to redirect
func Unauthorized(msg, redirect string) *Error {
	if msg == "" {
		msg = MsgLoginRequired
	}
	return &Error{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: msg, Redirect: redirect}
}

// Forbidden is returned for authenticated users lacking the privilege
func Forbidden(msg string) *Error {
	if msg == "" {
		msg = "You do not have access to this area."
	}
	return &Error{Kind: KindForbidden, Status: http.StatusForbidden, Message: msg}
}

// Business carries a backend rejection message verbatim
func Business(status int, msg string) *Error {
	if status < 400 || status > 499 {
		status = http.StatusUnprocessableEntity
	}
	return &Error{Kind: KindBusiness, Status: status, Message: msg}
}

// Infrastructure hides cause behind a generic retry-safe message
func Infrastructure(cause error) *Error {
	return &Error{Kind: KindInfrastructure, Status: http.StatusBadGateway, Message: GenericInfrastructureMessage, Cause: cause}
}

// Provider carries the payment provider's own text unmodified
func Provider(msg string, cause error) *Error {
	return &Error{Kind: KindProvider, Status: http.StatusPaymentRequired, Message: msg, Cause: cause}
}

// Redirect signals that a flow precondition is missing and the shopper must restart at step
func Redirect(step, msg string) *Error {
	return &Error{Kind: KindRedirect, Status: http.StatusConflict, Message: msg, Redirect: step}
}

// Conflict is returned when an identical request is still in flight
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusConflict, Message: msg}
}

// As extracts a classified error, wrapping anything else as infrastructure
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Infrastructure(err)
}

// Is reports whether err is a classified error of kind
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
