package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

const (
	insertUserQuery = `
		INSERT INTO users (id, username, hashed_password, created_at)
		VALUES ($1, $2, $3, $4)
	`
	selectUserByUsernameQuery = `
		SELECT id, username, hashed_password, created_at
		FROM users
		WHERE username = $1
	`
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create.
// Uniqueness of the username is enforced by the users_username_key constraint;
// a violation is returned as store.ErrUsernameExists.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(ctx, insertUserQuery,
		user.ID,
		user.Username,
		user.HashedPassword,
		user.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("username already taken", slog.String("username", user.Username))
			return store.ErrUsernameExists
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err, store.ErrUserNotFound, store.ErrUsernameExists)
	}

	log.Info("user created", slog.String("user_id", user.ID.String()))
	return nil
}

// GetByUsername implements store.UserStore.GetByUsername
func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getOne(ctx, selectUserByUsernameQuery, username, slog.String("username", username))
}

func (s *PostgresUserStore) getOne(ctx context.Context, query string, arg any, attr slog.Attr) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.HashedPassword,
		&user.CreatedAt,
	)
	if err != nil {
		mapped := MapError(err, store.ErrUserNotFound, store.ErrUsernameExists)
		if errors.Is(mapped, store.ErrNotFound) {
			log.Debug("user not found", attr)
		} else {
			log.Error("failed to get user", attr, slog.String("error", err.Error()))
		}
		return nil, mapped
	}
	return &user, nil
}
