package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tripplanner/backend/internal/model"
	"github.com/tripplanner/backend/internal/repository"
	"github.com/tripplanner/backend/internal/trip"
)

// DefaultSessionTTL is used when no TTL is configured.
const DefaultSessionTTL = 12 * time.Hour

// SessionService creates, resolves and ends trip sessions.
// Implements session.Resolver.
type SessionService struct {
	repo repository.SessionRepository
	ttl  time.Duration
	now  func() time.Time
}

// NewSessionService creates a SessionService. A non-positive ttl falls back to DefaultSessionTTL.
func NewSessionService(repo repository.SessionRepository, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{repo: repo, ttl: ttl, now: time.Now}
}

// Start creates a session seeded with the default itinerary and returns its id.
func (s *SessionService) Start(ctx context.Context) (string, error) {
	sess := trip.NewSession(uuid.NewString(), s.now(), s.ttl)
	if err := s.repo.Create(ctx, sess.State()); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	slog.Info("session started", "session_id", sess.ID, "expires_at", sess.ExpiresAt)
	return sess.ID, nil
}

// Resolve checks that id names a live session. Expired sessions are removed.
func (s *SessionService) Resolve(ctx context.Context, id string) error {
	_, err := s.load(ctx, id)
	return err
}

func (s *SessionService) load(ctx context.Context, id string) (*model.SessionState, error) {
	return loadState(ctx, s.repo, id, s.now())
}

// loadState fetches a live session. Expired sessions are deleted on sight.
func loadState(ctx context.Context, repo repository.SessionRepository, id string, now time.Time) (*model.SessionState, error) {
	st, err := repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if st.Expired(now) {
		slog.Debug("session expired", "session_id", id)
		_ = repo.Delete(ctx, id)
		return nil, ErrSessionExpired
	}
	return st, nil
}

// saveState writes a session back, mapping a vanished row to ErrSessionNotFound.
// Concurrent writers on one session are not serialized: last write wins.
func saveState(ctx context.Context, repo repository.SessionRepository, st *model.SessionState) error {
	err := repo.Save(ctx, st)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// End discards the session and all of its data.
func (s *SessionService) End(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	slog.Info("session ended", "session_id", id)
	return nil
}

// Sweep removes every expired session.
func (s *SessionService) Sweep(ctx context.Context) (int, error) {
	n, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("sweep sessions: %w", err)
	}
	if n > 0 {
		slog.Info("expired sessions removed", "count", n)
	}
	return n, nil
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *SessionService) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				slog.Error("session sweep failed", "error", err)
			}
		}
	}
}
