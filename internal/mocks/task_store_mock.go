package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockTaskStore is a mock of store.TaskStore interface for use with testify/mock
type TestifyMockTaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*TestifyMockTaskStore)(nil)

// Create is a mock implementation of store.TaskStore.Create
func (m *TestifyMockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// GetByID is a mock implementation of store.TaskStore.GetByID
func (m *TestifyMockTaskStore) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id, ownerID)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdateStatus is a mock implementation of store.TaskStore.UpdateStatus
func (m *TestifyMockTaskStore) UpdateStatus(
	ctx context.Context,
	id, ownerID uuid.UUID,
	status domain.TaskStatus,
) (*domain.Task, error) {
	args := m.Called(ctx, id, ownerID, status)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.TaskStore.Delete
func (m *TestifyMockTaskStore) Delete(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

// List is a mock implementation of store.TaskStore.List
func (m *TestifyMockTaskStore) List(
	ctx context.Context,
	ownerID uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	args := m.Called(ctx, ownerID, filter)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}
