// Package render projects an aggregated statement into its three output
// shapes: the on-screen summary, the printable PDF and the spreadsheet
// export. All formatted values come straight off the statement; nothing
// is recomputed here.
package render

import (
	"time"

	"statements/internal/core"
	"statements/internal/statement"
)

// Branding carries the document identity block. The zero value renders
// documents without a branding header.
type Branding struct {
	CompanyName string
	TagLine     string
	Footer      string
}

// DefaultFooter is the disclaimer printed under every document table.
const DefaultFooter = "This is a system-generated statement and does not require a signature."

// SummaryData is the view model behind the on-screen statement summary.
// Amount and date fields are final display strings.
type SummaryData struct {
	Customer      string
	StatementDate string
	DateRange     string

	// TotalOutstanding is the highlighted closing balance line.
	TotalOutstanding string

	Opening  string
	Invoiced string
	Received string
	Closing  string

	Lines []statement.Line

	// Totals row under the table, restating the aggregate sums.
	TotalDue      string
	TotalReceived string
}

// Summary builds the summary view for a statement generated at the
// given time.
func Summary(st *statement.Statement, now time.Time) SummaryData {
	return SummaryData{
		Customer:         st.Customer,
		StatementDate:    now.Format(core.DisplayDateLayout),
		DateRange:        st.DateRange,
		TotalOutstanding: core.FormatDecimal(st.Closing),
		Opening:          core.FormatDecimal(st.Opening),
		Invoiced:         core.FormatDecimal(st.Invoiced),
		Received:         core.FormatDecimal(st.Received),
		Closing:          core.FormatDecimal(st.Closing),
		Lines:            st.Lines,
		TotalDue:         core.FormatDecimal(st.TotalDue),
		TotalReceived:    core.FormatDecimal(st.TotalReceived),
	}
}
