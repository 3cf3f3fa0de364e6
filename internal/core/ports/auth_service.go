package ports

import (
	"context"
	"time"

	"github.com/taskdeck/taskdeck-api/internal/core/domain"
)

// AuthService covers account registration, session issuance and verification.
type AuthService interface {
	// SignUp registers a new account. Fails with domain.ErrEmailTaken when
	// the email is already registered.
	SignUp(ctx context.Context, email, name, password string) (*domain.User, error)
	// SignIn checks credentials and, on success, issues a signed session
	// token with its expiry and persists the matching session row.
	SignIn(ctx context.Context, email, password string) (*domain.User, string, time.Time, error)
	// SignOut revokes the session identified by the raw token.
	SignOut(ctx context.Context, token string) error
	// Verify resolves a raw token to an Identity. Expected rejections return
	// domain.ErrUnauthenticated; storage failures propagate as themselves.
	Verify(ctx context.Context, token string) (*domain.Identity, error)
	// ListUsers returns the open user directory, newest-first.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// SignInLimiter throttles repeated failed sign-in attempts per account key.
type SignInLimiter interface {
	// TooMany reports whether the key has exhausted its failure budget.
	TooMany(ctx context.Context, key string) (bool, error)
	// RecordFailure counts one failed attempt against the key.
	RecordFailure(ctx context.Context, key string) error
	// Reset clears the failure count after a successful sign-in.
	Reset(ctx context.Context, key string) error
}
