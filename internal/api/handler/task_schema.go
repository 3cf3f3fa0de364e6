package handler

import (
	"time"

	"github.com/taskdeck/taskdeck-api/internal/core/domain"
)

// --- Request / Response types ---

type createTaskRequest struct {
	Title       string  `json:"title"       validate:"required,min=1"`
	Description *string `json:"description" validate:"omitempty"`
	Status      string  `json:"status"      validate:"omitempty,oneof=pending started completed"`
}

// updateTaskRequest is a partial update: a field left out of the JSON body
// stays nil and the stored value is untouched, while an explicitly empty
// description clears it.
type updateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty"`
	Status      *string `json:"status"      validate:"omitempty,oneof=pending started completed"`
}

type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type taskEnvelope struct {
	Success bool         `json:"success"`
	Task    taskResponse `json:"task"`
}

type listTasksResponse struct {
	Tasks []taskResponse `json:"tasks"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
