package sqlite_test

import (
	"context"
	"testing"

	"github.com/phrazzld/tasks-api/internal/platform/migrate"
	"github.com/phrazzld/tasks-api/internal/platform/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tableExists := func(name string) bool {
		var count int
		require.NoError(t, db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&count))
		return count == 1
	}

	require.NoError(t, migrate.Up(ctx, db, sqlite.Migrations, discardLogger()))
	assert.True(t, tableExists("users"))
	assert.True(t, tableExists("tasks"))

	// Applying again is a no-op.
	require.NoError(t, migrate.Up(ctx, db, sqlite.Migrations, discardLogger()))

	for _, command := range []string{migrate.CommandStatus, migrate.CommandVersion} {
		assert.NoError(t, migrate.Run(ctx, db, sqlite.Migrations, command, discardLogger()))
	}

	require.NoError(t, migrate.Run(ctx, db, sqlite.Migrations, migrate.CommandDown, discardLogger()))
	assert.False(t, tableExists("tasks"))
	assert.True(t, tableExists("users"))

	err = migrate.Run(ctx, db, sqlite.Migrations, "sideways", discardLogger())
	assert.ErrorIs(t, err, migrate.ErrUnknownCommand)
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	_, err := sqlite.Open(context.Background(), "  ", nil)
	assert.Error(t, err)
}
