// Package statement turns raw ledger rows into per-customer account
// statements: opening balance, period invoice and receipt totals, and an
// ordered set of display lines ready for rendering.
package statement

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"statements/internal/core"
)

// AllDates is the display range used when no in-window row carries a
// usable invoice date.
const AllDates = "All dates"

// Line is one display row of a statement. Every textual field is
// pre-formatted; renderers must not re-derive them.
type Line struct {
	Seq            int
	InvoiceDate    string
	InvoiceNumber  string
	InvoiceAmount  string
	AmountReceived string
	DueAmount      string
	ReceivedDate   string
}

// Statement is the aggregated result for one customer and period. It is
// built fresh per request and never cached or mutated afterwards.
type Statement struct {
	Customer string

	Opening  decimal.Decimal
	Invoiced decimal.Decimal
	Received decimal.Decimal
	Closing  decimal.Decimal

	// TotalDue and TotalReceived restate the column sums for the
	// totals row, so the footer never diverges from the aggregation.
	TotalDue      decimal.Decimal
	TotalReceived decimal.Decimal

	// DateRange is the literal span of in-window invoice dates, or
	// AllDates when none is usable.
	DateRange string

	Lines []Line

	// Rows holds the normalized in-window rows in display order, for
	// projections that need exact values rather than formatted text.
	Rows []core.Row
}

// Customers returns the distinct customer names found in rows, sorted.
// Matching elsewhere is case-sensitive, so dedup here is too; blank
// names are skipped.
func Customers(rows []core.LedgerRow) []string {
	seen := make(map[string]struct{}, len(rows))
	var out []string
	for _, r := range rows {
		name := r.Customer
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
