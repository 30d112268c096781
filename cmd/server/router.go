package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tasks-api/internal/api"
	apiMiddleware "github.com/phrazzld/tasks-api/internal/api/middleware"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	authHandler := api.NewAuthHandler(app.authService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.authService)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.SignUp)
		r.Post("/signin", authHandler.SignIn)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/", taskHandler.ListTasks)
		r.Post("/", taskHandler.CreateTask)
		r.Get("/{id}", taskHandler.GetTask)
		r.Patch("/{id}/status", taskHandler.UpdateTaskStatus)
		r.Delete("/{id}", taskHandler.DeleteTask)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
