package postgres

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
	insertTaskQuery = `
		INSERT INTO tasks (id, user_id, title, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	selectTaskQuery = `
		SELECT id, user_id, title, description, status, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`
	updateTaskStatusQuery = `
		UPDATE tasks
		SET status = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
		RETURNING id, user_id, title, description, status, created_at, updated_at
	`
	deleteTaskQuery = `
		DELETE FROM tasks
		WHERE id = $1 AND user_id = $2
	`
)

// PostgresTaskStore implements the store.TaskStore interface using PostgreSQL.
// Every statement carries the owner in its WHERE clause.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
// Returns store.ErrInvalidEntity if the owner does not exist.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(ctx, insertTaskQuery,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		string(task.Status),
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("task_id", task.ID.String()),
				slog.String("user_id", task.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, task.UserID)
		}
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return MapError(err, store.ErrTaskNotFound, store.ErrDuplicate)
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	task, err := scanTask(s.db.QueryRowContext(ctx, selectTaskQuery, id, ownerID))
	if err != nil {
		return nil, s.mapRowError(ctx, "get", id, ownerID, err)
	}
	return task, nil
}

// UpdateStatus implements store.TaskStore.UpdateStatus
func (s *PostgresTaskStore) UpdateStatus(
	ctx context.Context,
	id, ownerID uuid.UUID,
	status domain.TaskStatus,
) (*domain.Task, error) {
	if !status.IsValid() {
		return nil, domain.ErrInvalidTaskStatus
	}

	row := s.db.QueryRowContext(ctx, updateTaskStatusQuery,
		string(status), time.Now().UTC(), id, ownerID)
	task, err := scanTask(row)
	if err != nil {
		return nil, s.mapRowError(ctx, "update_status", id, ownerID, err)
	}
	return task, nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, deleteTaskQuery, id, ownerID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()),
			slog.String("user_id", ownerID.String()))
		return 0, MapError(err, store.ErrTaskNotFound, store.ErrDuplicate)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected, nil
}

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(
	ctx context.Context,
	ownerID uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	query, args, err := store.BuildTaskListQuery(ownerID, filter, sq.Dollar, "LOWER")
	if err != nil {
		return nil, fmt.Errorf("failed to build task list query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list tasks",
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

func (s *PostgresTaskStore) mapRowError(
	ctx context.Context,
	op string,
	id, ownerID uuid.UUID,
	err error,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	mapped := MapError(err, store.ErrTaskNotFound, store.ErrDuplicate)
	if errors.Is(mapped, store.ErrNotFound) {
		log.Debug("task not found for owner",
			slog.String("operation", op),
			slog.String("task_id", id.String()),
			slog.String("user_id", ownerID.String()))
		return mapped
	}
	log.Error("task query failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
		slog.String("task_id", id.String()),
		slog.String("user_id", ownerID.String()))
	return mapped
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var status string
	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&status,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}
	task.Status = domain.TaskStatus(status)
	return &task, nil
}
