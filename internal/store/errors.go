package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or violates a foreign key or check constraint.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrTaskNotFound indicates that no task matched both the ID and the owner.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)

	// ErrUsernameExists indicates that a user with the given username already exists.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for unexpected storage failures with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "user", "task")
	Operation string // The operation that failed (e.g., "create", "list")
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s operation on %s failed: %v", e.Operation, e.Entity, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, and wrapped error.
func NewStoreError(entity, operation string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Err:       err,
	}
}
