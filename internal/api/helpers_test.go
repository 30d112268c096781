package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/stretchr/testify/require"
)

var testCaller = &domain.User{
	ID:        uuid.MustParse("6f1c1f0e-3c53-4f54-9d6f-2d2f6f0c8a11"),
	Username:  "alice",
	CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// withCaller stands in for the auth middleware.
func withCaller(caller *domain.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if caller != nil {
				r = r.WithContext(shared.WithCaller(r.Context(), caller))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newTaskRouter(svc *mocks.MockTaskService, caller *domain.User) http.Handler {
	h := NewTaskHandler(svc, discardLogger())
	r := chi.NewRouter()
	r.Use(withCaller(caller))
	r.Get("/tasks", h.ListTasks)
	r.Post("/tasks", h.CreateTask)
	r.Get("/tasks/{id}", h.GetTask)
	r.Patch("/tasks/{id}/status", h.UpdateTaskStatus)
	r.Delete("/tasks/{id}", h.DeleteTask)
	return r
}

func newAuthRouter(svc *mocks.MockAuthService) http.Handler {
	h := NewAuthHandler(svc, discardLogger())
	r := chi.NewRouter()
	r.Post("/auth/signup", h.SignUp)
	r.Post("/auth/signin", h.SignIn)
	return r
}

func doRequest(t *testing.T, handler http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func sampleTask(title string, status domain.TaskStatus) *domain.Task {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Task{
		ID:          uuid.New(),
		UserID:      testCaller.ID,
		Title:       title,
		Description: title + " description",
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
