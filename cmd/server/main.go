// Package main implements the entry point for the task tracker API server.
//
// Without flags it serves HTTP until SIGINT or SIGTERM. With -migrate it runs
// one migration command against the configured database and exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/platform/migrate"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, status, version) and exit")
	configDir := flag.String("config-dir", ".", "directory containing config.yaml")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configDir, *migrateCmd); err != nil {
		fmt.Fprintf(os.Stderr, "tasks-api: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration, sets up logging and the database, then either
// executes migrateCmd or serves until ctx is cancelled.
func run(ctx context.Context, configDir, migrateCmd string) error {
	cfg, err := config.LoadFrom(configDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		slog.String("stage", cfg.Stage),
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database", cfg.Database.String()))

	db, source, err := openDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}()

	if migrateCmd != "" {
		return runMigrations(ctx, db, source, migrateCmd, log)
	}

	if cfg.Database.Driver == config.DriverSQLite {
		if err := runMigrations(ctx, db, source, migrate.CommandUp, log); err != nil {
			return err
		}
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
