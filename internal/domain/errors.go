package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidTaskStatus is returned when a task status is not one of the known values.
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// Unwrap exposes both the specific cause and ErrValidation to errors.Is.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil || e.Err == ErrValidation {
		return []error{ErrValidation}
	}
	return []error{e.Err, ErrValidation}
}

// NewValidationError creates a ValidationError for field. A nil err defaults to ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
