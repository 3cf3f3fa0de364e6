package domain

import "time"

// Session is the server-side record of a completed sign-in. It binds the raw
// signed token to its owning user so a token can be revoked before its own
// expiry claim runs out. A session is valid only while ExpiresAt is strictly
// in the future; expired rows are skipped at verify time, not auto-purged.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session is no longer valid at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
