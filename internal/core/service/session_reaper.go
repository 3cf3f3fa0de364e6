package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdeck/taskdeck-api/internal/core/ports"
)

const defaultReapInterval = time.Hour

// SessionReaper periodically deletes expired session rows. Verification
// already rejects expired-but-present sessions, so the reaper only keeps the
// table from growing; skipping a run never affects correctness.
type SessionReaper struct {
	sessions ports.SessionRepository
	interval time.Duration
	log      zerolog.Logger
}

// NewSessionReaper creates a reaper running every interval. If interval <= 0,
// defaultReapInterval is used.
func NewSessionReaper(sessions ports.SessionRepository, interval time.Duration, log zerolog.Logger) *SessionReaper {
	if interval <= 0 {
		interval = defaultReapInterval
	}
	return &SessionReaper{sessions: sessions, interval: interval, log: log}
}

// Start launches the reap loop in a goroutine. The loop stops when ctx is
// cancelled.
func (r *SessionReaper) Start(ctx context.Context) {
	go r.run(ctx)
}

func (r *SessionReaper) run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.reap(ctx)
		}
	}
}

func (r *SessionReaper) reap(ctx context.Context) {
	deleted, err := r.sessions.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		r.log.Error().Err(err).Msg("session reap failed")
		return
	}
	if deleted > 0 {
		r.log.Info().Int64("deleted", deleted).Msg("expired sessions reaped")
	}
}
