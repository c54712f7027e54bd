package repository

import (
	"context"
	"time"

	"github.com/tripplanner/backend/internal/model"
)

// DB checks that a backing store is reachable.
type DB interface {
	Ping(ctx context.Context) error
}

// SessionRepository stores per-session trip state.
// Get returns ErrNotFound for unknown ids. Returned states are copies.
type SessionRepository interface {
	Create(ctx context.Context, s *model.SessionState) error
	Get(ctx context.Context, id string) (*model.SessionState, error)
	Save(ctx context.Context, s *model.SessionState) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
