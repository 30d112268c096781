package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskFilter narrows a task listing. Zero values mean "no restriction".
type TaskFilter struct {
	// Status, when non-nil, restricts results to exactly this status.
	Status *domain.TaskStatus

	// Search, when non-empty, restricts results to tasks whose title or
	// description contains it as a case-insensitive substring.
	Search string
}

// IsEmpty reports whether the filter applies no predicate beyond ownership.
func (f TaskFilter) IsEmpty() bool {
	return f.Status == nil && f.Search == ""
}

// Validate checks that a provided status is a known value.
func (f TaskFilter) Validate() error {
	if f.Status != nil && !f.Status.IsValid() {
		return domain.ErrInvalidTaskStatus
	}
	return nil
}

// TaskStore defines the interface for task persistence.
// Every method is scoped by owner: a task owned by someone else behaves
// exactly like a task that does not exist.
type TaskStore interface {
	// Create saves a new task. A nil ID is replaced with a fresh UUID.
	// Returns ErrInvalidEntity if validation fails or the owner does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves the task with the given ID owned by ownerID.
	// Returns ErrTaskNotFound if it does not exist or has a different owner.
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// UpdateStatus sets the status of the task matching both id and ownerID
	// and returns the updated task. Returns ErrTaskNotFound if nothing matched.
	UpdateStatus(ctx context.Context, id, ownerID uuid.UUID, status domain.TaskStatus) (*domain.Task, error)

	// Delete removes at most one task matching both id and ownerID and reports
	// how many rows were removed.
	Delete(ctx context.Context, id, ownerID uuid.UUID) (int64, error)

	// List returns ownerID's tasks matching filter in insertion order, using a
	// single query built by BuildTaskListQuery.
	List(ctx context.Context, ownerID uuid.UUID, filter TaskFilter) ([]*domain.Task, error)
}
