package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tripplanner/backend/internal/model"
)

// PgSessionRepository stores session snapshots in the trip_sessions table.
// Rows are removed when a session ends or expires.
type PgSessionRepository struct {
	pool *pgxpool.Pool
}

// NewPgSessionRepository returns a PostgreSQL-backed SessionRepository.
func NewPgSessionRepository(pool *pgxpool.Pool) *PgSessionRepository {
	return &PgSessionRepository{pool: pool}
}

func encodeState(s *model.SessionState) (itinerary, expenses []byte, err error) {
	it := s.Itinerary
	if it == nil {
		it = []model.ItineraryEntry{}
	}
	ex := s.Expenses
	if ex == nil {
		ex = []model.ExpenseEntry{}
	}
	if itinerary, err = json.Marshal(it); err != nil {
		return nil, nil, fmt.Errorf("encode itinerary: %w", err)
	}
	if expenses, err = json.Marshal(ex); err != nil {
		return nil, nil, fmt.Errorf("encode expenses: %w", err)
	}
	return itinerary, expenses, nil
}

func (r *PgSessionRepository) Create(ctx context.Context, s *model.SessionState) error {
	itinerary, expenses, err := encodeState(s)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO trip_sessions (id, created_at, expires_at, itinerary, expenses)
		 VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.CreatedAt, s.ExpiresAt, itinerary, expenses)
	return err
}

func (r *PgSessionRepository) Get(ctx context.Context, id string) (*model.SessionState, error) {
	s := &model.SessionState{}
	var itinerary, expenses []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, created_at, expires_at, itinerary, expenses FROM trip_sessions WHERE id = $1`,
		id).Scan(&s.ID, &s.CreatedAt, &s.ExpiresAt, &itinerary, &expenses)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itinerary, &s.Itinerary); err != nil {
		return nil, fmt.Errorf("decode itinerary: %w", err)
	}
	if err := json.Unmarshal(expenses, &s.Expenses); err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}
	return s, nil
}

func (r *PgSessionRepository) Save(ctx context.Context, s *model.SessionState) error {
	itinerary, expenses, err := encodeState(s)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE trip_sessions SET itinerary = $1, expenses = $2, updated_at = NOW() WHERE id = $3`,
		itinerary, expenses, s.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgSessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM trip_sessions WHERE id = $1`, id)
	return err
}

func (r *PgSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM trip_sessions WHERE expires_at < $1`, now)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// Ping checks the database connection.
func (r *PgSessionRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
