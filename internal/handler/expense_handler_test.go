package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tripplanner/backend/internal/model"
	"github.com/tripplanner/backend/internal/service"
)

// ---------------------------------------------------------------------------
// Mock ExpenseService
// ---------------------------------------------------------------------------

type mockExpenseService struct {
	ledgerFunc func(ctx context.Context, sessionID string) (*service.LedgerView, error)
	addFunc    func(ctx context.Context, sessionID, item string, amount decimal.Decimal) (*service.LedgerView, bool, error)
}

func (m *mockExpenseService) Ledger(ctx context.Context, sessionID string) (*service.LedgerView, error) {
	if m.ledgerFunc != nil {
		return m.ledgerFunc(ctx, sessionID)
	}
	return &service.LedgerView{Expenses: []model.ExpenseEntry{}}, nil
}
func (m *mockExpenseService) Add(ctx context.Context, sessionID, item string, amount decimal.Decimal) (*service.LedgerView, bool, error) {
	if m.addFunc != nil {
		return m.addFunc(ctx, sessionID, item, amount)
	}
	return &service.LedgerView{Expenses: []model.ExpenseEntry{}}, false, nil
}

type addResponse struct {
	Added    bool  `json:"added"`
	TotalTWD int64 `json:"total_twd"`
	Expenses []struct {
		Item      string `json:"item"`
		AmountTWD int64  `json:"amount_twd"`
	} `json:"expenses"`
}

// ---------------------------------------------------------------------------
// POST /api/expenses
// ---------------------------------------------------------------------------

func TestExpenseHandler_Add_RequiresSession(t *testing.T) {
	h := NewExpenseHandler(&mockExpenseService{})
	rec := httptest.NewRecorder()
	h.Add(rec, httptest.NewRequest(http.MethodPost, "/api/expenses", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestExpenseHandler_Add_Success(t *testing.T) {
	var gotItem string
	var gotAmount decimal.Decimal
	h := NewExpenseHandler(&mockExpenseService{
		addFunc: func(_ context.Context, _ string, item string, amount decimal.Decimal) (*service.LedgerView, bool, error) {
			gotItem, gotAmount = item, amount
			e := model.ExpenseEntry{ID: "e1", Item: item, AmountKRW: amount}
			return &service.LedgerView{Expenses: []model.ExpenseEntry{e}, TotalTWD: 100, Rate: 46}, true, nil
		},
	})
	rec := httptest.NewRecorder()
	h.Add(rec, sessionRequest(http.MethodPost, "/api/expenses", `{"item":"炸雞","amount_krw":4600}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", rec.Code, rec.Body.String())
	}
	if gotItem != "炸雞" || !gotAmount.Equal(decimal.NewFromInt(4600)) {
		t.Errorf("unexpected input item=%q amount=%s", gotItem, gotAmount)
	}
	var resp addResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Added || resp.TotalTWD != 100 || len(resp.Expenses) != 1 || resp.Expenses[0].AmountTWD != 100 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestExpenseHandler_Add_RejectedIsStill200(t *testing.T) {
	h := NewExpenseHandler(&mockExpenseService{})
	rec := httptest.NewRecorder()
	h.Add(rec, sessionRequest(http.MethodPost, "/api/expenses", `{"item":"","amount_krw":1000}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp addResponse
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Added {
		t.Error("expected added=false")
	}
}

func TestExpenseHandler_Add_InvalidJSON(t *testing.T) {
	h := NewExpenseHandler(&mockExpenseService{})
	rec := httptest.NewRecorder()
	h.Add(rec, sessionRequest(http.MethodPost, "/api/expenses", `{"amount_krw":"abc"}`))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestExpenseHandler_List_SessionGone(t *testing.T) {
	h := NewExpenseHandler(&mockExpenseService{
		ledgerFunc: func(context.Context, string) (*service.LedgerView, error) {
			return nil, service.ErrSessionNotFound
		},
	})
	rec := httptest.NewRecorder()
	h.List(rec, sessionRequest(http.MethodGet, "/api/expenses", ""))
	if rec.Code != http.StatusGone {
		t.Errorf("expected 410, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// GET /api/convert
// ---------------------------------------------------------------------------

func TestConvert(t *testing.T) {
	rec := httptest.NewRecorder()
	Convert(rec, httptest.NewRequest(http.MethodGet, "/api/convert?krw=4600", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		TWDRounded int64 `json:"twd_rounded"`
		Rate       int   `json:"rate"`
	}
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp.TWDRounded != 100 || resp.Rate != 46 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestConvert_InvalidAmount(t *testing.T) {
	for _, q := range []string{"", "abc", "-5"} {
		rec := httptest.NewRecorder()
		Convert(rec, httptest.NewRequest(http.MethodGet, "/api/convert?krw="+q, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("krw=%q: expected 400, got %d", q, rec.Code)
		}
	}
}
