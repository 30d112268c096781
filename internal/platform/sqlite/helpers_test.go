package sqlite_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/sqlite"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestDB returns a migrated private in-memory database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.OpenMigrated(context.Background(), sqlite.MemoryPath, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// newFileTestDB returns a migrated WAL database in a temporary directory.
// Unlike the in-memory variant its pool is not limited to one connection,
// so concurrent callers really overlap.
func newFileTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.db")
	db, err := sqlite.OpenMigrated(context.Background(), path, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mustCreateUser(t *testing.T, users *sqlite.UserStore, username string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(username, "hashed-"+username)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func mustCreateTask(t *testing.T, tasks *sqlite.TaskStore, owner uuid.UUID, title, description string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(owner, title, description)
	require.NoError(t, err)
	require.NoError(t, tasks.Create(context.Background(), task))
	return task
}
