package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value that may be missing. Absent amounts render
// as an empty string and contribute zero when summed, without ever being
// rewritten to zero in place.
type Amount struct {
	Value decimal.Decimal
	Valid bool
}

// AmountOf wraps a decimal into a present Amount.
func AmountOf(d decimal.Decimal) Amount {
	return Amount{Value: d, Valid: true}
}

// ParseAmount converts a raw cell value into an Amount. Text is stripped
// of comma group separators and surrounding whitespace before parsing.
// Blank or unparseable input yields the absent Amount; ParseAmount never
// returns an error.
func ParseAmount(raw any) Amount {
	switch v := raw.(type) {
	case nil:
		return Amount{}
	case Amount:
		return v
	case decimal.Decimal:
		return AmountOf(v)
	case float64:
		return AmountOf(decimal.NewFromFloat(v))
	case float32:
		return AmountOf(decimal.NewFromFloat32(v))
	case int:
		return AmountOf(decimal.NewFromInt(int64(v)))
	case int64:
		return AmountOf(decimal.NewFromInt(v))
	case string:
		return parseAmountText(v)
	default:
		return parseAmountText(fmt.Sprint(raw))
	}
}

func parseAmountText(s string) Amount {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return Amount{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}
	}
	return AmountOf(d)
}

// OrZero returns the decimal value, or zero when absent. This is the
// sum-skip-absent accessor: totals add OrZero so a blank cell contributes
// nothing without being coerced in the stored row.
func (a Amount) OrZero() decimal.Decimal {
	if !a.Valid {
		return decimal.Zero
	}
	return a.Value
}

// String renders the amount with two fractional digits and thousands
// separators, or "" when absent.
func (a Amount) String() string {
	if !a.Valid {
		return ""
	}
	return FormatDecimal(a.Value)
}

// Float64 returns the value for numeric spreadsheet cells. Only call on
// present amounts; absent amounts return 0.
func (a Amount) Float64() float64 {
	f, _ := a.OrZero().Float64()
	return f
}

// FormatDecimal renders a decimal with exactly two fractional digits and
// comma thousands grouping, e.g. 1234.5 -> "1,234.50".
func FormatDecimal(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + "." + fracPart
	if neg {
		return "-" + out
	}
	return out
}
