package ports

import (
	"context"

	"github.com/taskdeck/taskdeck-api/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns every user ordered newest-first.
	List(ctx context.Context) ([]domain.User, error)
}
