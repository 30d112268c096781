package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

const (
	taskColumnList = `id, user_id, title, description, status, created_at, updated_at`

	insertTaskQuery = `
		INSERT INTO tasks (id, user_id, title, description, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	selectTaskQuery = `SELECT ` + taskColumnList + ` FROM tasks WHERE id = ? AND user_id = ?`

	updateTaskStatusQuery = `
		UPDATE tasks SET status = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
		RETURNING ` + taskColumnList

	deleteTaskQuery = `DELETE FROM tasks WHERE id = ? AND user_id = ?`
)

// TaskStore implements store.TaskStore on SQLite.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a SQLite task store over db. If logger is nil,
// a default logger will be used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if err := task.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, insertTaskQuery,
		task.ID.String(),
		task.UserID.String(),
		task.Title,
		task.Description,
		string(task.Status),
		toMillis(task.CreatedAt),
		toMillis(task.UpdatedAt),
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, task.UserID)
		}
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return MapError(err, store.ErrTaskNotFound, store.ErrDuplicate)
	}
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	task, err := scanTask(s.db.QueryRowContext(ctx, selectTaskQuery, id.String(), ownerID.String()))
	if err != nil {
		return nil, s.mapRowError(ctx, "get", err)
	}
	return task, nil
}

// UpdateStatus implements store.TaskStore.UpdateStatus
func (s *TaskStore) UpdateStatus(
	ctx context.Context,
	id, ownerID uuid.UUID,
	status domain.TaskStatus,
) (*domain.Task, error) {
	if !status.IsValid() {
		return nil, domain.ErrInvalidTaskStatus
	}

	row := s.db.QueryRowContext(ctx, updateTaskStatusQuery,
		string(status), toMillis(time.Now()), id.String(), ownerID.String())
	task, err := scanTask(row)
	if err != nil {
		return nil, s.mapRowError(ctx, "update_status", err)
	}
	return task, nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	result, err := s.db.ExecContext(ctx, deleteTaskQuery, id.String(), ownerID.String())
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return 0, MapError(err, store.ErrTaskNotFound, store.ErrDuplicate)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected, nil
}

// List implements store.TaskStore.List
func (s *TaskStore) List(
	ctx context.Context,
	ownerID uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	query, args, err := store.BuildTaskListQuery(ownerID, filter, sq.Question, LowerFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to build task list query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", ownerID.String()))
		return nil, MapError(err, store.ErrTaskNotFound, store.ErrDuplicate)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskStore) mapRowError(ctx context.Context, op string, err error) error {
	mapped := MapError(err, store.ErrTaskNotFound, store.ErrDuplicate)
	if !errors.Is(mapped, store.ErrNotFound) {
		logger.FromContextOrDefault(ctx, s.logger).Error("task query failed",
			slog.String("operation", op),
			slog.String("error", err.Error()))
	}
	return mapped
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task                 domain.Task
		status               string
		createdAt, updatedAt int64
	)
	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&status,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	task.Status = domain.TaskStatus(status)
	task.CreatedAt = fromMillis(createdAt)
	task.UpdatedAt = fromMillis(updatedAt)
	return &task, nil
}
