package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestExpenseEntry_MarshalIncludesDerivedAmount(t *testing.T) {
	e := ExpenseEntry{ID: "e1", Item: "炸雞", AmountKRW: decimal.NewFromInt(4600), CreatedAt: time.Unix(0, 0).UTC()}
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["amount_twd"] != float64(100) {
		t.Errorf("expected amount_twd 100, got %v", got["amount_twd"])
	}
	if got["item"] != "炸雞" {
		t.Errorf("unexpected item %v", got["item"])
	}
}

func TestExpenseEntry_UnmarshalIgnoresStaleDerivedAmount(t *testing.T) {
	var e ExpenseEntry
	data := `{"id":"e1","item":"x","amount_krw":"9200","amount_twd":1}`
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.DisplayTWD() != 200 {
		t.Errorf("expected recomputed 200, got %d", e.DisplayTWD())
	}
}

func TestSessionState_Expired(t *testing.T) {
	now := time.Now()
	s := &SessionState{ExpiresAt: now.Add(-time.Second)}
	if !s.Expired(now) {
		t.Error("expected expired")
	}
	if (&SessionState{}).Expired(now) {
		t.Error("zero expiry never expires")
	}
}
