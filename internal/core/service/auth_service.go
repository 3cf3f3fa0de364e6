package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/taskdeck-api/internal/core/domain"
	"github.com/taskdeck/taskdeck-api/internal/core/ports"
)

const defaultSessionTTL = 7 * 24 * time.Hour

// sessionClaims are the signed claims embedded in a session token.
type sessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// AuthService implements registration, sign-in/out and session verification.
// The signing secret is injected at construction; rotating it invalidates
// every outstanding token, which is the accepted failure mode.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	limiter  ports.SignInLimiter
	secret   []byte
	tokenTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionRepository, limiter ports.SignInLimiter, secret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultSessionTTL
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		limiter:  limiter,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// SignUp registers a new account. Input shape (email format, name and
// password length) is validated at the transport boundary; here only the
// uniqueness invariant is enforced, by the storage layer's unique index.
func (s *AuthService) SignUp(ctx context.Context, email, name, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// SignIn checks credentials, issues a 7-day signed token and persists the
// session row binding the raw token to the user. Unknown email and wrong
// password are deliberately indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	if s.limiter != nil {
		blocked, err := s.limiter.TooMany(ctx, email)
		if err != nil {
			return nil, "", time.Time{}, fmt.Errorf("sign-in limiter: %w", err)
		}
		if blocked {
			return nil, "", time.Time{}, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return nil, "", time.Time{}, domain.ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return nil, "", time.Time{}, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("failed to reset sign-in limiter")
		}
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user signed in")
	return user, token, expiresAt, nil
}

// SignOut deletes the session row for the given raw token. Revoking an
// already-revoked token is a no-op, not an error.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	return s.sessions.DeleteByToken(ctx, token)
}

// Verify resolves a raw token to an Identity, short-circuiting on the first
// failed check: signature, session row presence, expiry, user id binding,
// and finally the user row itself (the owner may have been deleted after
// issuance, which cascade-removes the session too). All expected rejections
// surface as domain.ErrUnauthenticated; storage failures propagate.
func (s *AuthService) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthenticated
	}

	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	if session.Expired(s.now()) {
		return nil, domain.ErrUnauthenticated
	}
	if session.UserID != claims.UserID {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	return &domain.Identity{UserID: user.ID, Email: user.Email, Name: user.Name}, nil
}

// ListUsers returns the open user directory, newest-first.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// issueSession signs a token for the user and persists the session row that
// makes it revocable server-side.
func (s *AuthService) issueSession(ctx context.Context, userID string) (string, time.Time, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.tokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     signed,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record sign-in failure")
	}
}
