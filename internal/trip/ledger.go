package trip

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tripplanner/backend/internal/currency"
	"github.com/tripplanner/backend/internal/model"
)

// ExpenseLedger is the append-only expense list of one session.
type ExpenseLedger struct {
	entries []model.ExpenseEntry
	now     func() time.Time
	newID   func() string
}

// NewExpenseLedger returns a ledger holding a copy of entries.
func NewExpenseLedger(entries []model.ExpenseEntry) *ExpenseLedger {
	l := &ExpenseLedger{
		now:   time.Now,
		newID: uuid.NewString,
	}
	l.entries = append(make([]model.ExpenseEntry, 0, len(entries)), entries...)
	return l
}

// Add appends an expense. It reports false and changes nothing when item is
// blank or amountKRW is not a positive whole number of won.
func (l *ExpenseLedger) Add(item string, amountKRW decimal.Decimal) (model.ExpenseEntry, bool) {
	if strings.TrimSpace(item) == "" || !amountKRW.IsPositive() || !amountKRW.IsInteger() {
		return model.ExpenseEntry{}, false
	}
	e := model.ExpenseEntry{
		ID:        l.newID(),
		Item:      item,
		AmountKRW: amountKRW,
		CreatedAt: l.now(),
	}
	l.entries = append(l.entries, e)
	return e, true
}

// Entries returns the expenses in insertion order. The slice is a copy.
func (l *ExpenseLedger) Entries() []model.ExpenseEntry {
	out := make([]model.ExpenseEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of expenses.
func (l *ExpenseLedger) Len() int { return len(l.entries) }

// TotalKRW sums the source amounts.
func (l *ExpenseLedger) TotalKRW() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range l.entries {
		sum = sum.Add(e.AmountKRW)
	}
	return sum
}

// Total converts the KRW sum and truncates it. Entries are summed before
// conversion, so it can differ from adding up each rounded entry.
func (l *ExpenseLedger) Total() int64 {
	return currency.DisplayTruncate(currency.Convert(l.TotalKRW()))
}
