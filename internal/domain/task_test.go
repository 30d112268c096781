package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	task, err := NewTask(owner, "buy milk", "")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, task.ID)
	assert.Equal(t, owner, task.UserID)
	assert.Equal(t, TaskStatusOpen, task.Status)
	assert.Equal(t, "", task.Description)
	assert.True(t, task.IsOwnedBy(owner))
	assert.False(t, task.IsOwnedBy(uuid.New()))
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()

	valid := func() Task {
		return Task{
			ID:     uuid.New(),
			UserID: uuid.New(),
			Title:  "title",
			Status: TaskStatusInProgress,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr error
	}{
		{name: "valid", mutate: func(*Task) {}},
		{name: "empty id", mutate: func(t *Task) { t.ID = uuid.Nil }, wantErr: ErrEmptyTaskID},
		{name: "empty owner", mutate: func(t *Task) { t.UserID = uuid.Nil }, wantErr: ErrEmptyTaskUserID},
		{name: "empty title", mutate: func(t *Task) { t.Title = "" }, wantErr: ErrEmptyTaskTitle},
		{name: "blank title", mutate: func(t *Task) { t.Title = "   " }, wantErr: ErrEmptyTaskTitle},
		{name: "unknown status", mutate: func(t *Task) { t.Status = "ARCHIVED" }, wantErr: ErrInvalidTaskStatus},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			task := valid()
			tc.mutate(&task)
			err := task.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestParseTaskStatus(t *testing.T) {
	t.Parallel()

	for _, status := range AllTaskStatuses() {
		parsed, err := ParseTaskStatus(status.String())
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	for _, raw := range []string{"", "open", "Done", "CLOSED"} {
		_, err := ParseTaskStatus(raw)
		assert.ErrorIs(t, err, ErrInvalidTaskStatus, "raw=%q", raw)
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("id", "has invalid format", ErrInvalidID)
	assert.Equal(t, "id has invalid format", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidID))

	defaulted := NewValidationError("title", "is required", nil)
	assert.ErrorIs(t, defaulted, ErrValidation)
}
