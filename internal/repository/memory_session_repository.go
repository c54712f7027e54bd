package repository

import (
	"context"
	"sync"
	"time"

	"github.com/tripplanner/backend/internal/model"
)

// MemorySessionRepository keeps sessions in process memory. State is lost on
// restart, which is the default behaviour of the app.
type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*model.SessionState
}

// NewMemorySessionRepository returns an empty MemorySessionRepository.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]*model.SessionState)}
}

func (r *MemorySessionRepository) Create(_ context.Context, s *model.SessionState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s.Clone()
	return nil
}

func (r *MemorySessionRepository) Get(_ context.Context, id string) (*model.SessionState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

// Save overwrites the itinerary and expenses of an existing session.
func (r *MemorySessionRepository) Save(_ context.Context, s *model.SessionState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.ID]; !ok {
		return ErrNotFound
	}
	r.sessions[s.ID] = s.Clone()
	return nil
}

func (r *MemorySessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *MemorySessionRepository) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

// Ping always succeeds.
func (r *MemorySessionRepository) Ping(context.Context) error { return nil }

// Len returns the number of live sessions.
func (r *MemorySessionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
