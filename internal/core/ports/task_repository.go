package ports

import (
	"context"

	"github.com/taskdeck/taskdeck-api/internal/core/domain"
)

// TaskRepository defines the interface for task persistence. Every lookup and
// mutation is scoped by the owning user id; there is no unscoped variant.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	// ListByOwner returns the user's tasks ordered newest-first.
	ListByOwner(ctx context.Context, userID string) ([]domain.Task, error)
	// FindByIDAndOwner returns domain.ErrTaskNotFound when no row matches
	// both the task id and the owner id.
	FindByIDAndOwner(ctx context.Context, id, userID string) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	DeleteByIDAndOwner(ctx context.Context, id, userID string) error
	// CountByStatus returns per-status counts for the user's tasks. Statuses
	// with no tasks are absent from the map.
	CountByStatus(ctx context.Context, userID string) (map[domain.TaskStatus]int, error)
}
