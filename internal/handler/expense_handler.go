package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/tripplanner/backend/internal/currency"
	"github.com/tripplanner/backend/internal/service"
	"github.com/tripplanner/backend/pkg/session"
)

// ExpenseHandler serves the expense ledger of the caller's session.
type ExpenseHandler struct {
	svc service.ExpenseService
}

// NewExpenseHandler creates an ExpenseHandler.
func NewExpenseHandler(svc service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{svc: svc}
}

type addExpenseResponse struct {
	Added bool `json:"added"`
	*service.LedgerView
}

// List handles GET /api/expenses.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := session.IDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no_session")
		return
	}
	view, err := h.svc.Ledger(r.Context(), id)
	if err != nil {
		writeSessionError(w, err, "expense_list", id)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Add handles POST /api/expenses. A blank item or an amount that is not a
// positive whole number of won is ignored: the response is still 200, with added=false and the unchanged ledger.
func (h *ExpenseHandler) Add(w http.ResponseWriter, r *http.Request) {
	id, ok := session.IDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no_session")
		return
	}

	var req struct {
		Item      string          `json:"item"`
		AmountKRW decimal.Decimal `json:"amount_krw"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	view, added, err := h.svc.Add(r.Context(), id, req.Item, req.AmountKRW)
	if err != nil {
		writeSessionError(w, err, "expense_add", id)
		return
	}
	writeJSON(w, http.StatusOK, addExpenseResponse{Added: added, LedgerView: view})
}

// Convert handles GET /api/convert?krw=n. It needs no session.
func Convert(w http.ResponseWriter, r *http.Request) {
	krw, err := decimal.NewFromString(r.URL.Query().Get("krw"))
	if err != nil || krw.IsNegative() {
		writeError(w, http.StatusBadRequest, "invalid_amount")
		return
	}
	twd := currency.Convert(krw)
	writeJSON(w, http.StatusOK, map[string]any{
		"krw":         krw,
		"twd":         twd,
		"twd_rounded": currency.DisplayRound(twd),
		"display":     currency.Format(twd, currency.Target),
		"rate":        currency.Rate,
	})
}
