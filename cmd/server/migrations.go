package main

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/platform/migrate"
)

// runMigrations executes a single migration command against db.
func runMigrations(ctx context.Context, db *sql.DB, src migrate.Source, command string, logger *slog.Logger) error {
	logger.Info("Executing migrations", slog.String("command", command), slog.String("dialect", src.Dialect))

	if err := migrate.Run(ctx, db, src, command, logger); err != nil {
		return err
	}

	logger.Info("Migrations finished", slog.String("command", command))
	return nil
}
