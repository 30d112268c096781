package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskService provides task operations on behalf of an authenticated caller.
type TaskService interface {
	// CreateTask creates an OPEN task owned by caller.
	CreateTask(ctx context.Context, title, description string, caller *domain.User) (*domain.Task, error)

	// GetTask returns the caller's task with the given ID.
	GetTask(ctx context.Context, id uuid.UUID, caller *domain.User) (*domain.Task, error)

	// ListTasks returns all of the caller's tasks in creation order.
	ListTasks(ctx context.Context, caller *domain.User) ([]*domain.Task, error)

	// ListFilteredTasks returns the caller's tasks matching filter in creation order.
	ListFilteredTasks(ctx context.Context, caller *domain.User, filter store.TaskFilter) ([]*domain.Task, error)

	// UpdateTaskStatus sets the status of the caller's task. Any status may follow any other.
	UpdateTaskStatus(
		ctx context.Context,
		id uuid.UUID,
		status domain.TaskStatus,
		caller *domain.User,
	) (*domain.Task, error)

	// DeleteTask removes the caller's task.
	DeleteTask(ctx context.Context, id uuid.UUID, caller *domain.User) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

var _ TaskService = (*taskServiceImpl)(nil)

// NewTaskService creates a new TaskService.
// It returns an error if the task store is nil.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &taskServiceImpl{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	title, description string,
	caller *domain.User,
) (*domain.Task, error) {
	if caller == nil {
		return nil, ErrMissingCaller
	}

	task, err := domain.NewTask(caller.ID, title, description)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		s.logFailure(ctx, "create_task", caller, err, slog.String("task_id", task.ID.String()))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	s.log(ctx).Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", caller.ID.String()))
	return task, nil
}

// GetTask implements TaskService.
func (s *taskServiceImpl) GetTask(ctx context.Context, id uuid.UUID, caller *domain.User) (*domain.Task, error) {
	if caller == nil {
		return nil, ErrMissingCaller
	}

	task, err := s.tasks.GetByID(ctx, id, caller.ID)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logFailure(ctx, "get_task", caller, err, slog.String("task_id", id.String()))
		}
		return nil, NewTaskServiceError("get_task", "failed to load task", err)
	}
	return task, nil
}

// ListTasks implements TaskService.
func (s *taskServiceImpl) ListTasks(ctx context.Context, caller *domain.User) ([]*domain.Task, error) {
	return s.ListFilteredTasks(ctx, caller, store.TaskFilter{})
}

// ListFilteredTasks implements TaskService.
func (s *taskServiceImpl) ListFilteredTasks(
	ctx context.Context,
	caller *domain.User,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	if caller == nil {
		return nil, ErrMissingCaller
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.List(ctx, caller.ID, filter)
	if err != nil {
		status := ""
		if filter.Status != nil {
			status = string(*filter.Status)
		}
		s.logFailure(ctx, "list_tasks", caller, err,
			slog.String("filter_status", status),
			slog.String("filter_search", filter.Search))
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// UpdateTaskStatus implements TaskService.
func (s *taskServiceImpl) UpdateTaskStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.TaskStatus,
	caller *domain.User,
) (*domain.Task, error) {
	if caller == nil {
		return nil, ErrMissingCaller
	}
	if !status.IsValid() {
		return nil, domain.ErrInvalidTaskStatus
	}

	task, err := s.tasks.UpdateStatus(ctx, id, caller.ID, status)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTaskStatus) {
			return nil, err
		}
		if !store.IsNotFoundError(err) {
			s.logFailure(ctx, "update_task_status", caller, err,
				slog.String("task_id", id.String()),
				slog.String("status", string(status)))
		}
		return nil, NewTaskServiceError("update_task_status", "failed to update task status", err)
	}

	s.log(ctx).Info("task status updated",
		slog.String("task_id", id.String()),
		slog.String("status", string(status)))
	return task, nil
}

// DeleteTask implements TaskService.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id uuid.UUID, caller *domain.User) error {
	if caller == nil {
		return ErrMissingCaller
	}

	affected, err := s.tasks.Delete(ctx, id, caller.ID)
	if err != nil {
		s.logFailure(ctx, "delete_task", caller, err, slog.String("task_id", id.String()))
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}

	s.log(ctx).Info("task deleted", slog.String("task_id", id.String()))
	return nil
}

func (s *taskServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// logFailure records an unexpected store failure with the caller's identity.
func (s *taskServiceImpl) logFailure(
	ctx context.Context,
	operation string,
	caller *domain.User,
	err error,
	attrs ...any,
) {
	args := append([]any{
		slog.String("operation", operation),
		slog.String("user_id", caller.ID.String()),
		slog.String("username", caller.Username),
		slog.String("error", err.Error()),
	}, attrs...)
	s.log(ctx).Error("task store operation failed", args...)
}
