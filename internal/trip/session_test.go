package trip

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tripplanner/backend/internal/model"
)

func TestNewSession_SeedsDefaults(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewSession("sid", now, time.Hour)

	if s.Itinerary.Len() != len(model.DefaultItinerary()) {
		t.Errorf("expected seeded itinerary, got %d rows", s.Itinerary.Len())
	}
	if s.Ledger.Len() != 0 {
		t.Errorf("expected empty ledger, got %d", s.Ledger.Len())
	}
	if !s.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Errorf("unexpected expiry %v", s.ExpiresAt)
	}
}

func TestSession_StateRoundTrip(t *testing.T) {
	s := NewSession("sid", time.Now(), time.Hour)
	s.Ledger.Add("taxi", decimal.NewFromInt(9200))

	restored := FromState(s.State())

	if restored.ID != "sid" {
		t.Errorf("expected sid, got %q", restored.ID)
	}
	if !reflect.DeepEqual(restored.Itinerary.List(), s.Itinerary.List()) {
		t.Error("itinerary not restored")
	}
	if restored.Ledger.Total() != 200 {
		t.Errorf("expected total 200, got %d", restored.Ledger.Total())
	}
}

func TestSessions_AreIndependent(t *testing.T) {
	a := NewSession("a", time.Now(), time.Hour)
	b := NewSession("b", time.Now(), time.Hour)
	a.Itinerary.Replace(nil)
	a.Ledger.Add("x", decimal.NewFromInt(46))

	if b.Itinerary.Len() == 0 || b.Ledger.Len() != 0 {
		t.Error("sessions share state")
	}
}
