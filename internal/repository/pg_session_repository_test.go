package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tripplanner/backend/internal/model"
)

// These tests need a migrated database; set TEST_DATABASE_URL to run them.
func newTestPgRepo(t *testing.T) *PgSessionRepository {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	pool, err := NewPool(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(pool.Close)
	return NewPgSessionRepository(pool)
}

func TestPgSessionRepository_CreateSaveGet(t *testing.T) {
	repo := newTestPgRepo(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	s := &model.SessionState{
		ID:        fmt.Sprintf("test-%d", time.Now().UnixNano()),
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
		Itinerary: model.DefaultItinerary(),
	}
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	t.Cleanup(func() { _ = repo.Delete(ctx, s.ID) })

	s.Expenses = []model.ExpenseEntry{{ID: "e1", Item: "taxi", AmountKRW: decimal.NewFromInt(4600), CreatedAt: now}}
	if err := repo.Save(ctx, s); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := repo.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.Itinerary) != len(s.Itinerary) {
		t.Errorf("expected %d rows, got %d", len(s.Itinerary), len(got.Itinerary))
	}
	if len(got.Expenses) != 1 || got.Expenses[0].DisplayTWD() != 100 {
		t.Errorf("unexpected expenses %+v", got.Expenses)
	}
}

func TestPgSessionRepository_GetUnknown(t *testing.T) {
	repo := newTestPgRepo(t)
	_, err := repo.Get(context.Background(), "no-such-session")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
