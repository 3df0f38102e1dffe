package core

import "testing"

func TestNormalizeInvoiceAmountFallsBackToDue(t *testing.T) {
	r := LedgerRow{Customer: "Acme", InvoiceNumber: "INV-1", DueAmount: "1,500.00"}

	row := r.Normalize()
	if !row.InvoiceAmount.Valid {
		t.Fatal("invoice amount absent despite a due amount")
	}
	if got := row.InvoiceAmount.Value.StringFixed(2); got != "1500.00" {
		t.Errorf("invoice amount = %s, want 1500.00", got)
	}
}

func TestNormalizeInvoiceAmountKeepsOwnValue(t *testing.T) {
	r := LedgerRow{Customer: "Acme", InvoiceAmount: "2,000.00", DueAmount: "1,500.00"}

	row := r.Normalize()
	if got := row.InvoiceAmount.Value.StringFixed(2); got != "2000.00" {
		t.Errorf("invoice amount = %s, want 2000.00", got)
	}
}

func TestNormalizeBothAmountsAbsent(t *testing.T) {
	r := LedgerRow{Customer: "Acme", InvoiceNumber: "INV-1", DueAmount: ""}

	row := r.Normalize()
	if row.InvoiceAmount.Valid {
		t.Error("invoice amount present with nothing to fall back on")
	}
	if row.DueAmount.Valid {
		t.Error("blank due amount parsed as present")
	}
}
