package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/tripplanner/backend/internal/model"
	"github.com/tripplanner/backend/internal/repository"
	"github.com/tripplanner/backend/internal/trip"
)

// ItineraryView is what clients see of a session's trip table.
type ItineraryView struct {
	Entries []model.ItineraryEntry `json:"entries"`
	Days    []string               `json:"days"`
	Gaps    []trip.FieldGap        `json:"gaps"`
}

// ItineraryService exposes the itinerary of a session.
type ItineraryService interface {
	List(ctx context.Context, sessionID string) (*ItineraryView, error)
	Replace(ctx context.Context, sessionID string, entries []model.ItineraryEntry) (*ItineraryView, error)
	Export(ctx context.Context, sessionID string) ([]byte, error)
}

// ItineraryServiceImpl is the ItineraryService backed by a SessionRepository.
type ItineraryServiceImpl struct {
	repo repository.SessionRepository
	now  func() time.Time
}

// NewItineraryService creates an ItineraryServiceImpl.
func NewItineraryService(repo repository.SessionRepository) ItineraryService {
	return &ItineraryServiceImpl{repo: repo, now: time.Now}
}

func (s *ItineraryServiceImpl) session(ctx context.Context, id string) (*trip.Session, error) {
	st, err := loadState(ctx, s.repo, id, s.now())
	if err != nil {
		return nil, err
	}
	return trip.FromState(st), nil
}

// List returns the current table.
func (s *ItineraryServiceImpl) List(ctx context.Context, sessionID string) (*ItineraryView, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return itineraryView(sess.Itinerary), nil
}

// Replace swaps the whole table. Rows are not validated.
func (s *ItineraryServiceImpl) Replace(ctx context.Context, sessionID string, entries []model.ItineraryEntry) (*ItineraryView, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.Itinerary.Replace(entries)
	if err := saveState(ctx, s.repo, sess.State()); err != nil {
		return nil, err
	}
	view := itineraryView(sess.Itinerary)
	slog.Debug("itinerary replaced", "session_id", sessionID, "rows", len(view.Entries), "gaps", len(view.Gaps))
	return view, nil
}

// Export returns the table as BOM-prefixed CSV.
func (s *ItineraryServiceImpl) Export(ctx context.Context, sessionID string) ([]byte, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Itinerary.Export(), nil
}

func itineraryView(store *trip.ItineraryStore) *ItineraryView {
	gaps := store.BlankFields()
	if gaps == nil {
		gaps = []trip.FieldGap{}
	}
	return &ItineraryView{
		Entries: store.List(),
		Days:    model.DayLabels,
		Gaps:    gaps,
	}
}
