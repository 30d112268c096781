// Package testdb opens real databases for integration tests.
//
// PostgreSQL tests run only when TASKS_TEST_DATABASE_URL (or DATABASE_URL)
// points at a disposable database; otherwise they are skipped. Each test
// body runs in a transaction that is rolled back afterwards.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/tasks-api/internal/platform/migrate"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds connection setup and migrations.
const TestTimeout = 30 * time.Second

// Environment variables consulted by GetTestDatabaseURL, in order.
const (
	TestDatabaseURLEnv = "TASKS_TEST_DATABASE_URL"
	DatabaseURLEnv     = "DATABASE_URL"
)

// GetTestDatabaseURL returns the first non-empty database URL from the environment.
func GetTestDatabaseURL() string {
	if url := os.Getenv(TestDatabaseURLEnv); url != "" {
		return url
	}
	return os.Getenv(DatabaseURLEnv)
}

// IsIntegrationTestEnvironment reports whether a PostgreSQL URL is configured.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// GetTestDBWithT opens and migrates the PostgreSQL test database, skipping
// the test when none is configured. The handle is closed on cleanup.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skipf("%s not set - skipping PostgreSQL integration test", TestDatabaseURLEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := postgres.Open(ctx, dbURL, logger)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	require.NoError(t, migrate.Up(ctx, db, postgres.Migrations, logger), "failed to migrate test database")
	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// leave no rows behind.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}
