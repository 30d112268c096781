package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
)

// application holds the dependencies shared by the HTTP layer.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService     auth.JWTService
	passwordHasher auth.PasswordHasher
	authService    auth.AuthService
	taskService    service.TaskService
}

// newApplication wires stores and services for an already opened and
// migrated database. The caller owns db and closes it.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.userStore, app.taskStore, err = newStores(cfg.Database.Driver, db, logger)
	if err != nil {
		return nil, err
	}

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	app.passwordHasher = hasher
	logger.Debug("password hasher initialized", slog.Int("bcrypt_cost", hasher.Cost()))

	app.authService, err = auth.NewAuthService(app.userStore, app.passwordHasher, app.jwtService, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	app.taskService, err = service.NewTaskService(app.taskStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
