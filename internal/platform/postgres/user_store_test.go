package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresUserStore_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		execErr error
		wantErr error
	}{
		{name: "success"},
		{
			name:    "duplicate username",
			execErr: &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"},
			wantErr: store.ErrUsernameExists,
		},
		{
			name:    "driver failure",
			execErr: errors.New("connection reset"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMock(t)
			userStore := postgres.NewPostgresUserStore(db, discardLogger())

			user, err := domain.NewUser("alice", "$2a$10$hash")
			require.NoError(t, err)

			exec := mock.ExpectExec("INSERT INTO users").
				WithArgs(user.ID, "alice", "$2a$10$hash", sqlmock.AnyArg())
			if tc.execErr != nil {
				exec.WillReturnError(tc.execErr)
			} else {
				exec.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err = userStore.Create(context.Background(), user)
			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.execErr != nil:
				assert.ErrorIs(t, err, tc.execErr)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostgresUserStore_CreateAssignsID(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	userStore := postgres.NewPostgresUserStore(db, nil)

	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(0, 1))

	user := &domain.User{Username: "bob", HashedPassword: "hash"}
	require.NoError(t, userStore.Create(context.Background(), user))
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestPostgresUserStore_CreateRejectsInvalidUser(t *testing.T) {
	t.Parallel()

	db, _ := newMock(t)
	userStore := postgres.NewPostgresUserStore(db, discardLogger())

	err := userStore.Create(context.Background(), &domain.User{Username: "", HashedPassword: "hash"})
	assert.ErrorIs(t, err, domain.ErrEmptyUsername)
}

func TestPostgresUserStore_GetByUsername(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	columns := []string{"id", "username", "hashed_password", "created_at"}

	t.Run("found", func(t *testing.T) {
		db, mock := newMock(t)
		userStore := postgres.NewPostgresUserStore(db, discardLogger())

		mock.ExpectQuery(`SELECT id, username, hashed_password, created_at\s+FROM users\s+WHERE username = \$1`).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(id.String(), "alice", "hash", created))

		user, err := userStore.GetByUsername(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "hash", user.HashedPassword)
		assert.True(t, created.Equal(user.CreatedAt))
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMock(t)
		userStore := postgres.NewPostgresUserStore(db, discardLogger())

		mock.ExpectQuery("FROM users").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := userStore.GetByUsername(context.Background(), "ghost")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestPostgresUserStore_GetByUsernameDriverFailure(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	userStore := postgres.NewPostgresUserStore(db, discardLogger())

	mock.ExpectQuery(`WHERE username = \$1`).
		WithArgs("alice").
		WillReturnError(errors.New("timeout"))

	_, err := userStore.GetByUsername(context.Background(), "alice")
	assert.Error(t, err)
	assert.False(t, store.IsNotFoundError(err))
}

func TestNewPostgresUserStore_NilDB(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { postgres.NewPostgresUserStore(nil, nil) })
}
