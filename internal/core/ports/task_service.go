package ports

import (
	"context"

	"github.com/taskdeck/taskdeck-api/internal/core/domain"
)

// CreateTaskInput carries the caller-supplied fields for a new task. The
// owner is never part of the input; it comes from the authenticated identity.
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      domain.TaskStatus
}

// UpdateTaskInput is a partial update: nil means "field absent, leave it
// alone", while a non-nil pointer means "set this value". A present but
// blank description is normalized to no description at all.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
}

// TaskService contains all task operations. Every method takes the owning
// identity resolved by the auth middleware, never a client-supplied user id.
type TaskService interface {
	Create(ctx context.Context, owner domain.Identity, input CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context, owner domain.Identity) ([]domain.Task, error)
	Update(ctx context.Context, owner domain.Identity, id string, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, owner domain.Identity, id string) error
	Stats(ctx context.Context, owner domain.Identity) (*domain.TaskStats, error)
}
