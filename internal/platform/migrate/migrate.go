// Package migrate applies embedded goose migrations to a database handle.
//
// goose keeps its dialect, base filesystem and logger in package globals, so
// every run here holds a package mutex while it configures and executes.
package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"
)

// Commands accepted by Run.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandStatus  = "status"
	CommandVersion = "version"
)

// TableName is the goose bookkeeping table shared by every backend.
const TableName = "schema_migrations"

// ErrUnknownCommand is returned when Run receives a command it does not support.
var ErrUnknownCommand = errors.New("unknown migration command")

var gooseMu sync.Mutex

// Source describes the migrations of one storage backend.
type Source struct {
	// Dialect is the goose dialect name, e.g. "postgres" or "sqlite3".
	Dialect string
	// FS holds the *.sql migration files at its root.
	FS fs.FS
}

// Up applies all pending migrations.
func Up(ctx context.Context, db *sql.DB, src Source, logger *slog.Logger) error {
	return Run(ctx, db, src, CommandUp, logger)
}

// Run executes a single goose command against db.
func Run(ctx context.Context, db *sql.DB, src Source, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(
		slog.String("component", "migrations"),
		slog.String("dialect", src.Dialect),
		slog.String("command", command),
	)

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(src.FS)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(&slogGooseLogger{log: log})
	goose.SetTableName(TableName)
	if err := goose.SetDialect(src.Dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect %q: %w", src.Dialect, err)
	}

	var err error
	switch command {
	case CommandUp:
		err = goose.UpContext(ctx, db, ".")
	case CommandDown:
		err = goose.DownContext(ctx, db, ".")
	case CommandStatus:
		err = goose.StatusContext(ctx, db, ".")
	case CommandVersion:
		var version int64
		version, err = goose.GetDBVersionContext(ctx, db)
		if err == nil {
			log.Info("current schema version", slog.Int64("version", version))
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
	if err != nil {
		log.Error("migration command failed", slog.String("error", err.Error()))
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	log.Debug("migration command finished")
	return nil
}

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	log *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.log.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at error level and does not exit; goose returns the error to Run.
func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...))
}
