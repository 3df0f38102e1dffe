package google

import (
	"fmt"
	"strings"

	"statements/internal/core"
)

// Worksheet column titles. Invoice Amount is optional; older ledger
// sheets never carried it.
const (
	colCustomer       = "Customer Name"
	colInvoiceNumber  = "Invoice Number"
	colInvoiceDate    = "Invoice Date"
	colInvoiceAmount  = "Invoice Amount"
	colDueAmount      = "Due Amount"
	colAmountReceived = "Amount Received"
	colReceivedDate   = "Received Date"
)

var requiredColumns = []string{
	colCustomer, colInvoiceNumber, colInvoiceDate, colDueAmount, colAmountReceived, colReceivedDate,
}

// parseValues converts the raw values matrix into ledger rows. Row 1 is
// a banner, row 2 the header, data starts at row 3; anything shorter is
// an empty ledger. A header missing required columns fails here rather
// than as a field lookup later.
func parseValues(values [][]interface{}) ([]core.LedgerRow, error) {
	if len(values) < 3 {
		return nil, nil
	}
	headers := toStrings(values[1])

	idx := make(map[string]int, len(requiredColumns)+1)
	var missing []string
	for _, name := range requiredColumns {
		i := indexOf(headers, name)
		if i == -1 {
			missing = append(missing, name)
			continue
		}
		idx[name] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: header missing %s; got %v",
			core.ErrSourceUnavailable, strings.Join(missing, ", "), headers)
	}
	invoiceAmountCol := indexOf(headers, colInvoiceAmount)

	rows := make([]core.LedgerRow, 0, len(values)-2)
	for _, raw := range values[2:] {
		row := core.LedgerRow{
			Customer:       strings.TrimSpace(cellString(raw, idx[colCustomer])),
			InvoiceNumber:  strings.TrimSpace(cellString(raw, idx[colInvoiceNumber])),
			InvoiceDate:    cell(raw, idx[colInvoiceDate]),
			DueAmount:      cell(raw, idx[colDueAmount]),
			AmountReceived: cell(raw, idx[colAmountReceived]),
			ReceivedDate:   cell(raw, idx[colReceivedDate]),
		}
		if invoiceAmountCol != -1 {
			row.InvoiceAmount = cell(raw, invoiceAmountCol)
		} else {
			// Older sheets track only the outstanding figure.
			row.InvoiceAmount = cell(raw, idx[colDueAmount])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cell(row []interface{}, i int) any {
	if i < 0 || i >= len(row) {
		return nil
	}
	return row[i]
}

func cellString(row []interface{}, i int) string {
	v := cell(row, i)
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func indexOf(arr []string, target string) int {
	for i, v := range arr {
		if strings.EqualFold(v, strings.TrimSpace(target)) {
			return i
		}
	}
	return -1
}
