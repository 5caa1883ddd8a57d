package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when input fails validation.
	// It is usually wrapped by a ValidationError naming the offending fields.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or not positive.
	ErrInvalidID = errors.New("invalid id")

	// ErrEmptyPatch is returned when an update carries no field to change.
	ErrEmptyPatch = errors.New("nothing to update")
)

// ValidationError reports which required fields were missing or invalid.
type ValidationError struct {
	Fields []string
	Reason string
	Err    error
}

// NewValidationError creates a ValidationError for the given fields.
// reason is appended after the field list, e.g. "name & price required".
func NewValidationError(reason string, fields ...string) *ValidationError {
	return &ValidationError{
		Fields: fields,
		Reason: reason,
		Err:    ErrValidation,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s %s", strings.Join(e.Fields, " & "), e.Reason)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is any kind of validation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrEmptyPatch)
}
