package batch

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"statements/internal/core"
)

func ledgerRows() []core.LedgerRow {
	return []core.LedgerRow{
		{Customer: "Alpha", InvoiceNumber: "A-1", InvoiceDate: "01-01-2024", InvoiceAmount: "1,000.00", DueAmount: "1,000.00"},
		{Customer: "Alpha", InvoiceNumber: "A-2", InvoiceDate: "05-01-2024", InvoiceAmount: "500.00", DueAmount: "500.00"},
		{Customer: "Beta", InvoiceNumber: "B-1", InvoiceDate: "02-01-2024", InvoiceAmount: "750.00", DueAmount: "750.00", AmountReceived: "100.00"},
		// Settled in full: nothing outstanding, must be skipped.
		{Customer: "Gamma", InvoiceNumber: "G-1", InvoiceDate: "03-01-2024", InvoiceAmount: "200.00", DueAmount: "0.00", AmountReceived: "200.00"},
	}
}

func TestRun(t *testing.T) {
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	res, err := Run(context.Background(), ledgerRows(), Options{LedgerName: "Al Ain", Now: now})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Generated != 2 {
		t.Errorf("generated = %d, want 2", res.Generated)
	}
	if res.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", res.Skipped)
	}

	zr, err := zip.NewReader(bytes.NewReader(res.Archive), int64(len(res.Archive)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("archive members = %d, want 2", len(zr.File))
	}
	for _, f := range zr.File {
		if !strings.Contains(f.Name, "Al Ain") || !strings.Contains(f.Name, "01-Feb-2024") {
			t.Errorf("member name %q missing ledger or date", f.Name)
		}
		if strings.Contains(f.Name, "Gamma") {
			t.Errorf("settled customer present in archive: %q", f.Name)
		}
	}
}

func TestRunDeterministicMemberOrder(t *testing.T) {
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	res, err := Run(context.Background(), ledgerRows(), Options{LedgerName: "L", Now: now, Workers: 8})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Files) != 2 || !strings.HasPrefix(res.Files[0], "Alpha") || !strings.HasPrefix(res.Files[1], "Beta") {
		t.Errorf("member order = %v, want Alpha then Beta", res.Files)
	}
}

func TestRunMalformedRowDoesNotAbort(t *testing.T) {
	rows := append(ledgerRows(), core.LedgerRow{
		Customer: "Alpha", InvoiceNumber: "A-3", InvoiceDate: "not a date", InvoiceAmount: "garbage", DueAmount: "garbage",
	})
	res, err := Run(context.Background(), rows, Options{LedgerName: "L"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Generated != 2 || res.Skipped != 1 {
		t.Errorf("generated/skipped = %d/%d, want 2/1", res.Generated, res.Skipped)
	}
}

func TestRunProgress(t *testing.T) {
	var mu sync.Mutex
	var calls []int
	opts := Options{
		LedgerName: "L",
		Progress: func(done, total int) {
			mu.Lock()
			defer mu.Unlock()
			if total != 3 {
				t.Errorf("total = %d, want 3", total)
			}
			calls = append(calls, done)
		},
	}
	if _, err := Run(context.Background(), ledgerRows(), opts); err != nil {
		t.Fatalf("Run: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 3 {
		t.Errorf("progress calls = %d, want 3", len(calls))
	}
}

func TestRunEmptyLedger(t *testing.T) {
	_, err := Run(context.Background(), nil, Options{})
	if !errors.Is(err, core.ErrNoRows) {
		t.Errorf("err = %v, want ErrNoRows", err)
	}
}
