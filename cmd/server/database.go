package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/migrate"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/platform/sqlite"
	"github.com/phrazzld/tasks-api/internal/store"
)

// openDatabase connects to the configured backend and returns the handle
// together with that backend's embedded migrations.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, migrate.Source, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DSN(), logger)
		if err != nil {
			return nil, migrate.Source{}, err
		}
		return db, postgres.Migrations, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DSN(), logger)
		if err != nil {
			return nil, migrate.Source{}, err
		}
		return db, sqlite.Migrations, nil

	default:
		return nil, migrate.Source{}, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// newStores builds the user and task stores for driver on top of db.
func newStores(driver string, db *sql.DB, logger *slog.Logger) (store.UserStore, store.TaskStore, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.NewPostgresUserStore(db, logger), postgres.NewPostgresTaskStore(db, logger), nil
	case config.DriverSQLite:
		return sqlite.NewUserStore(db, logger), sqlite.NewTaskStore(db, logger), nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
