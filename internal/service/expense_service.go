package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tripplanner/backend/internal/currency"
	"github.com/tripplanner/backend/internal/model"
	"github.com/tripplanner/backend/internal/repository"
	"github.com/tripplanner/backend/internal/trip"
)

// LedgerView is what clients see of a session's expenses.
type LedgerView struct {
	Expenses        []model.ExpenseEntry `json:"expenses"`
	TotalKRW        decimal.Decimal      `json:"total_krw"`
	TotalTWD        int64                `json:"total_twd"`
	DisplayTotalKRW string               `json:"display_total_krw"`
	DisplayTotalTWD string               `json:"display_total_twd"`
	Rate            int                  `json:"rate"`
}

// ExpenseService exposes the expense ledger of a session.
type ExpenseService interface {
	Ledger(ctx context.Context, sessionID string) (*LedgerView, error)
	// Add reports added=false when the input is rejected; that is not an error.
	Add(ctx context.Context, sessionID, item string, amountKRW decimal.Decimal) (view *LedgerView, added bool, err error)
}

// ExpenseServiceImpl is the ExpenseService backed by a SessionRepository.
type ExpenseServiceImpl struct {
	repo repository.SessionRepository
	now  func() time.Time
}

// NewExpenseService creates an ExpenseServiceImpl.
func NewExpenseService(repo repository.SessionRepository) ExpenseService {
	return &ExpenseServiceImpl{repo: repo, now: time.Now}
}

func (s *ExpenseServiceImpl) session(ctx context.Context, id string) (*trip.Session, error) {
	st, err := loadState(ctx, s.repo, id, s.now())
	if err != nil {
		return nil, err
	}
	return trip.FromState(st), nil
}

// Ledger returns all expenses and the converted total.
func (s *ExpenseServiceImpl) Ledger(ctx context.Context, sessionID string) (*LedgerView, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return ledgerView(sess.Ledger), nil
}

// Add appends an expense. Blank items and amounts that are not positive
// whole won are dropped silently and nothing is written.
func (s *ExpenseServiceImpl) Add(ctx context.Context, sessionID, item string, amountKRW decimal.Decimal) (*LedgerView, bool, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	entry, added := sess.Ledger.Add(item, amountKRW)
	if !added {
		slog.Debug("expense ignored", "session_id", sessionID, "item_empty", strings.TrimSpace(item) == "", "amount_krw", amountKRW.String())
		return ledgerView(sess.Ledger), false, nil
	}
	if err := saveState(ctx, s.repo, sess.State()); err != nil {
		return nil, false, err
	}
	slog.Debug("expense added", "session_id", sessionID, "expense_id", entry.ID, "amount_krw", amountKRW.String())
	return ledgerView(sess.Ledger), true, nil
}

func ledgerView(l *trip.ExpenseLedger) *LedgerView {
	totalKRW := l.TotalKRW()
	totalTWD := l.Total()
	return &LedgerView{
		Expenses:        l.Entries(),
		TotalKRW:        totalKRW,
		TotalTWD:        totalTWD,
		DisplayTotalKRW: currency.Format(totalKRW, currency.Source),
		DisplayTotalTWD: currency.Format(decimal.NewFromInt(totalTWD), currency.Target),
		Rate:            currency.Rate,
	}
}
