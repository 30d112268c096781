package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/tasks-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check them with errors.Is; the API layer maps them to HTTP status codes.
var (
	// ErrTaskNotFound indicates the task does not exist or belongs to another user.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrPersistence indicates an unexpected storage failure.
	// API layer should map this to HTTP 500 Internal Server Error.
	ErrPersistence = errors.New("task persistence failure")

	// ErrMissingCaller indicates an operation was invoked without an authenticated user.
	ErrMissingCaller = errors.New("authenticated caller is required")
)

// TaskServiceError wraps unexpected errors from the task service with context.
// It matches both ErrPersistence and the underlying error.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "list_tasks")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns ErrPersistence and the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrPersistence}
	}
	return []error{ErrPersistence, e.Err}
}

// NewTaskServiceError translates a store error for operation.
// Not-found conditions become ErrTaskNotFound; anything else is wrapped.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrTaskNotFound) || errors.Is(err, store.ErrTaskNotFound) {
		return ErrTaskNotFound
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
