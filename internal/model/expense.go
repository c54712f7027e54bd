package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tripplanner/backend/internal/currency"
)

// ExpenseEntry is one ledger line. The TWD amount is never stored; it is
// derived from AmountKRW every time it is read.
type ExpenseEntry struct {
	ID        string
	Item      string
	AmountKRW decimal.Decimal
	CreatedAt time.Time
}

// AmountTWD returns the exact converted amount.
func (e ExpenseEntry) AmountTWD() decimal.Decimal {
	return currency.Convert(e.AmountKRW)
}

// DisplayTWD returns the converted amount rounded for display.
func (e ExpenseEntry) DisplayTWD() int64 {
	return currency.DisplayRound(e.AmountTWD())
}

type expenseEntryJSON struct {
	ID             string          `json:"id"`
	Item           string          `json:"item"`
	AmountKRW      decimal.Decimal `json:"amount_krw"`
	AmountTWD      int64           `json:"amount_twd"`
	AmountTWDExact string          `json:"amount_twd_exact"`
	DisplayKRW     string          `json:"display_krw"`
	CreatedAt      time.Time       `json:"created_at"`
}

// MarshalJSON emits the stored fields plus the derived TWD amounts.
func (e ExpenseEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(expenseEntryJSON{
		ID:             e.ID,
		Item:           e.Item,
		AmountKRW:      e.AmountKRW,
		AmountTWD:      e.DisplayTWD(),
		AmountTWDExact: e.AmountTWD().String(),
		DisplayKRW:     currency.Format(e.AmountKRW, currency.Source),
		CreatedAt:      e.CreatedAt,
	})
}

// UnmarshalJSON reads the stored fields; derived ones are ignored.
func (e *ExpenseEntry) UnmarshalJSON(data []byte) error {
	var v expenseEntryJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*e = ExpenseEntry{
		ID:        v.ID,
		Item:      v.Item,
		AmountKRW: v.AmountKRW,
		CreatedAt: v.CreatedAt,
	}
	return nil
}
