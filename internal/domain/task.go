package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents where a task is in its lifecycle.
// Any status may follow any other; there is no enforced ordering.
type TaskStatus string

// Possible task status values
const (
	TaskStatusOpen       TaskStatus = "OPEN"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// Common validation errors for Task
var (
	ErrEmptyTaskID     = errors.New("task ID cannot be empty")
	ErrEmptyTaskUserID = errors.New("task owner cannot be empty")
	ErrEmptyTaskTitle  = errors.New("task title cannot be empty")
)

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"-"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates an OPEN task owned by userID.
// Returns an error if validation fails.
func NewTask(userID uuid.UUID, title, description string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      TaskStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTaskUserID
	}

	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTaskTitle
	}

	if !t.Status.IsValid() {
		return ErrInvalidTaskStatus
	}

	return nil
}

// IsOwnedBy reports whether userID owns the task.
func (t *Task) IsOwnedBy(userID uuid.UUID) bool {
	return t.UserID == userID
}

// IsValid reports whether s is one of the known statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s TaskStatus) String() string {
	return string(s)
}

// ParseTaskStatus converts raw into a TaskStatus. Matching is exact.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	status := TaskStatus(raw)
	if !status.IsValid() {
		return "", ErrInvalidTaskStatus
	}
	return status, nil
}

// AllTaskStatuses lists the known statuses in declaration order.
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusOpen, TaskStatusInProgress, TaskStatusDone}
}
