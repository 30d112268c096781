package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/phrazzld/tasks-api/internal/platform/migrate"
	"github.com/phrazzld/tasks-api/internal/platform/postgres/migrations"
)

// DriverName is the database/sql driver registered by pgx.
const DriverName = "pgx"

// Pool settings applied by Open.
const (
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
	pingTimeout     = 5 * time.Second
)

// Migrations describes the embedded PostgreSQL schema for goose.
var Migrations = migrate.Source{Dialect: "postgres", FS: migrations.FS}

// Open establishes a pooled connection to PostgreSQL and verifies it with a ping.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if logger != nil {
		logger.Info("database connection established", slog.String("driver", DriverName))
	}
	return db, nil
}
