package core

// LedgerRow is one invoice-or-payment record exactly as read from a
// ledger source. Raw fields keep whatever representation the source
// returned (serial numbers, formatted text, blanks); nothing is coerced
// at fetch time. Rows are treated as immutable once read.
type LedgerRow struct {
	Customer       string
	InvoiceNumber  string
	InvoiceDate    any
	InvoiceAmount  any
	DueAmount      any
	AmountReceived any
	ReceivedDate   any
}

// Row is a LedgerRow with every date and amount normalized. A field that
// could not be normalized is absent, never zero; the row itself is kept.
type Row struct {
	Customer       string
	InvoiceNumber  string
	InvoiceDate    Date
	InvoiceAmount  Amount
	DueAmount      Amount
	AmountReceived Amount
	ReceivedDate   Date
}

// Normalize derives a typed Row from the raw record. The receiver is
// left untouched. A record without a usable invoice amount takes the
// due amount instead: older ledgers carry only the due column, and the
// invoiced total must still reflect what the customer owes.
func (r LedgerRow) Normalize() Row {
	due := ParseAmount(r.DueAmount)
	invoice := ParseAmount(r.InvoiceAmount)
	if !invoice.Valid {
		invoice = due
	}
	return Row{
		Customer:       r.Customer,
		InvoiceNumber:  r.InvoiceNumber,
		InvoiceDate:    ParseDate(r.InvoiceDate),
		InvoiceAmount:  invoice,
		DueAmount:      due,
		AmountReceived: ParseAmount(r.AmountReceived),
		ReceivedDate:   ParseDate(r.ReceivedDate),
	}
}
