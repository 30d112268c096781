package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service"
)

// TaskHandler serves the /tasks endpoints. Every route requires the auth
// middleware to have placed the caller in the request context.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /tasks. The optional status and search query
// parameters narrow the result; without them every task of the caller is
// returned in creation order.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	filter, err := parseTaskFilter(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var tasks []*domain.Task
	if filter.IsEmpty() {
		tasks, err = h.taskService.ListTasks(r.Context(), caller)
	} else {
		tasks, err = h.taskService.ListFilteredTasks(r.Context(), caller, filter)
	}
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// GetTask handles GET /tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id, caller)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// CreateTask handles POST /tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), req.Title, req.Description, caller)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Debug("task created", slog.String("task_id", task.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// UpdateTaskStatus handles PATCH /tasks/{id}/status.
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateTaskStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.taskService.UpdateTaskStatus(r.Context(), id, domain.TaskStatus(req.Status), caller)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task status")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /tasks/{id} and answers 204 on success.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id, caller); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Debug("task deleted", slog.String("task_id", id.String()))
	shared.RespondNoContent(w, http.StatusNoContent)
}
