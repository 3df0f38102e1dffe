package google

import (
	"errors"
	"testing"

	"statements/internal/core"
)

func sheetValues() [][]interface{} {
	return [][]interface{}{
		{"Outstanding Invoices - Al Ain"},
		{"Customer Name", "Invoice Number", "Invoice Date", "Due Amount", "Amount Received", "Received Date"},
		{"Acme", "INV-1", 45292.0, "1,000.00", "", ""},
		{"Acme", "INV-2", "05-01-2024", 500.0, 200.0, 45310.0},
	}
}

func TestParseValues(t *testing.T) {
	rows, err := parseValues(sheetValues())
	if err != nil {
		t.Fatalf("parseValues: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Customer != "Acme" || rows[0].InvoiceNumber != "INV-1" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	// Raw values pass through untouched; normalization happens later.
	if _, ok := rows[0].InvoiceDate.(float64); !ok {
		t.Errorf("serial date coerced early: %T", rows[0].InvoiceDate)
	}
	if rows[1].DueAmount != 500.0 {
		t.Errorf("due = %v, want raw 500.0", rows[1].DueAmount)
	}
	// No Invoice Amount column: the due figure stands in.
	if rows[1].InvoiceAmount != 500.0 {
		t.Errorf("invoice amount = %v, want 500.0", rows[1].InvoiceAmount)
	}
}

func TestParseValuesTooShort(t *testing.T) {
	rows, err := parseValues([][]interface{}{
		{"banner"},
		{"Customer Name"},
	})
	if err != nil {
		t.Fatalf("parseValues: %v", err)
	}
	if rows != nil {
		t.Errorf("rows = %v, want empty set for short sheet", rows)
	}
}

func TestParseValuesMissingColumns(t *testing.T) {
	values := [][]interface{}{
		{"banner"},
		{"Customer Name", "Invoice Number"},
		{"Acme", "INV-1"},
	}
	_, err := parseValues(values)
	if !errors.Is(err, core.ErrSourceUnavailable) {
		t.Errorf("err = %v, want ErrSourceUnavailable", err)
	}
}

func TestParseValuesRaggedRow(t *testing.T) {
	values := sheetValues()
	values = append(values, []interface{}{"Short"})
	rows, err := parseValues(values)
	if err != nil {
		t.Fatalf("parseValues: %v", err)
	}
	last := rows[len(rows)-1]
	if last.Customer != "Short" || last.DueAmount != nil {
		t.Errorf("ragged row = %+v", last)
	}
}
