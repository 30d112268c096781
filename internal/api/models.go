package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// CredentialsRequest is the body of both signup and signin.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,min=4,max=20"`
	Password string `json:"password" validate:"required,min=8,max=32"`
}

// SignInResponse carries the access token issued on a successful signin.
type SignInResponse struct {
	AccessToken string `json:"accessToken"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required,notblank"`
	Description string `json:"description"`
}

// UpdateTaskStatusRequest defines the payload for changing a task's status.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=OPEN IN_PROGRESS DONE"`
}

// TaskResponse is the wire form of a task. The owner is implied by the token
// and not echoed back.
type TaskResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status.String(),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}
