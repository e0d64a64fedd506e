package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrAvailabilityConflict means the requested quantity cannot be promised
	// for the requested window. Expected and user-recoverable.
	ErrAvailabilityConflict = errors.New("requested quantity is not available for the selected dates")

	// ErrUnconfiguredRate means the product has no active rate for the
	// requested rental type or duration.
	ErrUnconfiguredRate = errors.New("no rate configured for the requested rental type")

	// ErrInventoryNotFound means the ledger row for a product is missing at
	// reservation or release time. Data-integrity fault: the enclosing
	// booking mutation must abort.
	ErrInventoryNotFound = errors.New("inventory record not found for product")

	// ErrBookingNotFound means no booking matches the given id or number.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidTransition means the state machine forbids the requested
	// status change.
	ErrInvalidTransition = errors.New("invalid booking status transition")

	// ErrRateLimitExceeded means the caller was throttled.
	ErrRateLimitExceeded = errors.New("too many booking requests, try again later")

	// ErrDuplicateBookingNumber means the generated booking number collided
	// with an existing one. Callers regenerate and retry.
	ErrDuplicateBookingNumber = errors.New("booking number already exists")
)

// RateLimitError carries the retry hint alongside ErrRateLimitExceeded.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s (retry after %s)", ErrRateLimitExceeded, e.RetryAfter.Round(time.Second))
}

func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimitExceeded
}

// ValidationError is a field-level input failure returned to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a field-level validation failure.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
