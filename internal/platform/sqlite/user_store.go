package sqlite

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
		VALUES (?, ?, ?, ?)
	`
	selectUserColumns = `SELECT id, username, hashed_password, created_at FROM users`
)

// UserStore implements store.UserStore on SQLite.
type UserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewUserStore creates a SQLite user store over db. If logger is nil,
// a default logger will be used.
func NewUserStore(db store.DBTX, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create. The UNIQUE index on username
// decides races between concurrent signups.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if err := user.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, insertUserQuery,
		user.ID.String(),
		user.Username,
		user.HashedPassword,
		toMillis(user.CreatedAt),
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
	return nil
}

// GetByUsername implements store.UserStore.GetByUsername
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getOne(ctx, selectUserColumns+` WHERE username = ?`, username)
}

func (s *UserStore) getOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	var (
		user      domain.User
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.HashedPassword,
		&createdAt,
	)
	if err != nil {
		mapped := MapError(err, store.ErrUserNotFound, store.ErrUsernameExists)
		if !errors.Is(mapped, store.ErrNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).
				Error("failed to get user", slog.String("error", err.Error()))
		}
		return nil, mapped
	}
	user.CreatedAt = fromMillis(createdAt)
	return &user, nil
}
