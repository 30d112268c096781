package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockTaskService is a testify mock of service.TaskService.
type MockTaskService struct {
	mock.Mock
}

var _ service.TaskService = (*MockTaskService)(nil)

func taskResult(args mock.Arguments) (*domain.Task, error) {
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

func taskListResult(args mock.Arguments) ([]*domain.Task, error) {
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// CreateTask is a mock implementation of service.TaskService.CreateTask
func (m *MockTaskService) CreateTask(
	ctx context.Context,
	title, description string,
	caller *domain.User,
) (*domain.Task, error) {
	return taskResult(m.Called(ctx, title, description, caller))
}

// GetTask is a mock implementation of service.TaskService.GetTask
func (m *MockTaskService) GetTask(ctx context.Context, id uuid.UUID, caller *domain.User) (*domain.Task, error) {
	return taskResult(m.Called(ctx, id, caller))
}

// ListTasks is a mock implementation of service.TaskService.ListTasks
func (m *MockTaskService) ListTasks(ctx context.Context, caller *domain.User) ([]*domain.Task, error) {
	return taskListResult(m.Called(ctx, caller))
}

// ListFilteredTasks is a mock implementation of service.TaskService.ListFilteredTasks
func (m *MockTaskService) ListFilteredTasks(
	ctx context.Context,
	caller *domain.User,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	return taskListResult(m.Called(ctx, caller, filter))
}

// UpdateTaskStatus is a mock implementation of service.TaskService.UpdateTaskStatus
func (m *MockTaskService) UpdateTaskStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.TaskStatus,
	caller *domain.User,
) (*domain.Task, error) {
	return taskResult(m.Called(ctx, id, status, caller))
}

// DeleteTask is a mock implementation of service.TaskService.DeleteTask
func (m *MockTaskService) DeleteTask(ctx context.Context, id uuid.UUID, caller *domain.User) error {
	args := m.Called(ctx, id, caller)
	return args.Error(0)
}
