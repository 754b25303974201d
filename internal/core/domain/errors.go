package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy of the service. Validation and expiry problems are always
// recovered at the triggering handler; nothing here is fatal.
var (
	ErrValidation     = errors.New("validation error")
	ErrExpired        = errors.New("verification code expired")
	ErrNotFound       = errors.New("property not found")
	ErrNoPendingReset = errors.New("no pending password reset")
)

// ValidationError wraps a user-input problem (missing required field, empty
// image list, password mismatch, malformed email) with a human message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap makes every ValidationError match ErrValidation via errors.Is.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ExpiryError signals that the verification-code window has elapsed. The
// user recovers by requesting a new code.
type ExpiryError struct {
	Message string
}

func (e *ExpiryError) Error() string { return e.Message }

func (e *ExpiryError) Unwrap() error { return ErrExpired }
