package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/phrazzld/tasks-api/internal/platform/migrate"
	"github.com/phrazzld/tasks-api/internal/platform/sqlite/migrations"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Migrations describes the embedded SQLite schema for goose.
var Migrations = migrate.Source{Dialect: "sqlite3", FS: migrations.FS}

// Open opens the SQLite database at path with foreign keys enforced.
//
// An in-memory database lives only as long as its connection, so for
// MemoryPath the pool is pinned to a single connection that never expires.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	memory := path == MemoryPath
	dsn := MemoryPath + "?_pragma=foreign_keys(1)"
	if !memory {
		dsn = filepath.Clean(path) +
			"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	}

	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if memory {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if logger != nil {
		logger.Info("sqlite database opened", slog.String("path", path))
	}
	return db, nil
}

// OpenMigrated opens the database at path and applies all pending migrations.
func OpenMigrated(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	db, err := Open(ctx, path, logger)
	if err != nil {
		return nil, err
	}
	if err := migrate.Up(ctx, db, Migrations, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
