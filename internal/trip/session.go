// Package trip holds the per-session itinerary table and expense ledger.
package trip

import (
	"time"

	"github.com/tripplanner/backend/internal/model"
)

// Session is the state one browser session owns. It is built for a request
// from a stored SessionState and written back with State.
type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time
	Itinerary *ItineraryStore
	Ledger    *ExpenseLedger
}

// NewSession starts a session seeded with the default itinerary and an empty ledger.
func NewSession(id string, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:        id,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		Itinerary: NewItineraryStore(model.DefaultItinerary()),
		Ledger:    NewExpenseLedger(nil),
	}
}

// FromState rebuilds a session from its stored form.
func FromState(st *model.SessionState) *Session {
	return &Session{
		ID:        st.ID,
		CreatedAt: st.CreatedAt,
		ExpiresAt: st.ExpiresAt,
		Itinerary: NewItineraryStore(st.Itinerary),
		Ledger:    NewExpenseLedger(st.Expenses),
	}
}

// State returns the stored form of the session.
func (s *Session) State() *model.SessionState {
	return &model.SessionState{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
		Itinerary: s.Itinerary.List(),
		Expenses:  s.Ledger.Entries(),
	}
}
