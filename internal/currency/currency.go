package currency

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const (
	// Source is the currency expenses are entered in.
	Source = "KRW"
	// Target is the currency expenses are reported in.
	Target = "TWD"
)

// Rate is the fixed number of KRW per TWD. It is not fetched from anywhere.
const Rate = 46

var rate = decimal.NewFromInt(Rate)

// Convert returns krw / Rate. No rounding is applied here; callers round for
// display with DisplayRound or DisplayTruncate.
func Convert(krw decimal.Decimal) decimal.Decimal {
	return krw.Div(rate)
}

// DisplayRound rounds half to even, which is how a single converted entry is shown.
func DisplayRound(d decimal.Decimal) int64 {
	return d.RoundBank(0).IntPart()
}

// DisplayTruncate drops the fractional part. Totals are shown this way.
func DisplayTruncate(d decimal.Decimal) int64 {
	return d.IntPart()
}

// Format renders amount (in major units) with the currency's symbol and
// separators, e.g. "₩4,600" or "NT$100.00".
func Format(amount decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return amount.String() + " " + code
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, code).Display()
}
