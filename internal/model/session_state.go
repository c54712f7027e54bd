package model

import "time"

// SessionState is the stored form of one browser session's trip data.
type SessionState struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`
	Itinerary []ItineraryEntry `json:"itinerary"`
	Expenses  []ExpenseEntry   `json:"expenses"`
}

// Expired reports whether the session has passed its expiry at now.
func (s *SessionState) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Clone returns a deep copy so callers never share slices with a repository.
func (s *SessionState) Clone() *SessionState {
	c := *s
	c.Itinerary = append([]ItineraryEntry(nil), s.Itinerary...)
	c.Expenses = append([]ExpenseEntry(nil), s.Expenses...)
	return &c
}
