package statement

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"statements/internal/core"
)

// Aggregate computes the statement for one customer over an optional
// period. Source rows are never modified; normalization happens on a
// per-call copy. It returns core.ErrInvalidPeriod before touching any
// row when the window is inverted, and core.ErrNoRows when nothing
// matches the customer or the window.
func Aggregate(rows []core.LedgerRow, customer string, period Period) (*Statement, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	var norm []core.Row
	for _, r := range rows {
		if r.Customer == customer {
			norm = append(norm, r.Normalize())
		}
	}
	if len(norm) == 0 {
		return nil, fmt.Errorf("customer %q: %w", customer, core.ErrNoRows)
	}

	// Opening balance: due amounts dated strictly before the window
	// start. Without a lower bound there is nothing "before".
	opening := decimal.Zero
	if !period.From.IsAbsent() {
		for _, r := range norm {
			if !r.InvoiceDate.IsAbsent() && r.InvoiceDate.Before(period.From.Time) {
				opening = opening.Add(r.DueAmount.OrZero())
			}
		}
	}

	var window []core.Row
	for _, r := range norm {
		if period.Contains(r.InvoiceDate) {
			window = append(window, r)
		}
	}
	if len(window) == 0 {
		return nil, fmt.Errorf("customer %q, period %s..%s: %w",
			customer, period.From, period.To, core.ErrNoRows)
	}

	// Ascending by invoice date; rows without a date go last and keep
	// their original relative order.
	sort.SliceStable(window, func(i, j int) bool {
		di, dj := window[i].InvoiceDate, window[j].InvoiceDate
		switch {
		case di.IsAbsent():
			return false
		case dj.IsAbsent():
			return true
		default:
			return di.Before(dj.Time)
		}
	})

	invoiced := decimal.Zero
	received := decimal.Zero
	due := decimal.Zero
	for _, r := range window {
		invoiced = invoiced.Add(r.InvoiceAmount.OrZero())
		received = received.Add(r.AmountReceived.OrZero())
		due = due.Add(r.DueAmount.OrZero())
	}

	st := &Statement{
		Customer:      customer,
		Opening:       opening,
		Invoiced:      invoiced,
		Received:      received,
		Closing:       opening.Add(invoiced).Sub(received),
		TotalDue:      due,
		TotalReceived: received,
		DateRange:     dateRange(window),
		Rows:          window,
		Lines:         make([]Line, 0, len(window)),
	}
	for i, r := range window {
		st.Lines = append(st.Lines, Line{
			Seq:            i + 1,
			InvoiceDate:    r.InvoiceDate.String(),
			InvoiceNumber:  r.InvoiceNumber,
			InvoiceAmount:  r.InvoiceAmount.String(),
			AmountReceived: r.AmountReceived.String(),
			DueAmount:      r.DueAmount.String(),
			ReceivedDate:   r.ReceivedDate.String(),
		})
	}
	return st, nil
}

func dateRange(window []core.Row) string {
	var first, last core.Date
	for _, r := range window {
		d := r.InvoiceDate
		if d.IsAbsent() {
			continue
		}
		if first.IsAbsent() || d.Before(first.Time) {
			first = d
		}
		if last.IsAbsent() || d.After(last.Time) {
			last = d
		}
	}
	if first.IsAbsent() {
		return AllDates
	}
	return first.String() + " to " + last.String()
}
