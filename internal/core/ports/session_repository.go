package ports

import (
	"context"
	"time"

	"github.com/taskdeck/taskdeck-api/internal/core/domain"
)

// SessionRepository defines the interface for session persistence.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	FindByToken(ctx context.Context, token string) (*domain.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	// DeleteExpired removes sessions whose expiry is at or before now and
	// returns how many rows were deleted.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
