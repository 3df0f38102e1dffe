// Package sqlite provides a local, file-backed ledger source for
// development and offline use. The table mirrors the worksheet layout:
// every value is stored as read, as text, and normalization still
// happens downstream.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"statements/internal/core"
	"statements/internal/ledger"
)

type Store struct {
	db *sql.DB
}

var _ ledger.RowSource = (*Store)(nil)

// Open opens (creating if needed) the ledger database and brings the
// schema up to date.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// FetchRows returns every stored row of one ledger worksheet in insert
// order. Empty strings come back as nil raw values so blank cells stay
// indistinguishable from a sheet read.
func (s *Store) FetchRows(ctx context.Context, ledgerID, sheetName string) ([]core.LedgerRow, error) {
	const q = `
		SELECT customer_name, invoice_number, invoice_date, invoice_amount,
		       due_amount, amount_received, received_date
		FROM ledger_rows
		WHERE ledger_id = ? AND sheet_name = ?
		ORDER BY id`
	rows, err := s.db.QueryContext(ctx, q, ledgerID, sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: query ledger_rows: %v", core.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	var out []core.LedgerRow
	for rows.Next() {
		var customer, invoiceNumber string
		var invoiceDate, invoiceAmount, dueAmount, amountReceived, receivedDate sql.NullString
		if err := rows.Scan(&customer, &invoiceNumber, &invoiceDate, &invoiceAmount,
			&dueAmount, &amountReceived, &receivedDate); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		out = append(out, core.LedgerRow{
			Customer:       customer,
			InvoiceNumber:  invoiceNumber,
			InvoiceDate:    rawValue(invoiceDate),
			InvoiceAmount:  rawValue(invoiceAmount),
			DueAmount:      rawValue(dueAmount),
			AmountReceived: rawValue(amountReceived),
			ReceivedDate:   rawValue(receivedDate),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate ledger_rows: %v", core.ErrSourceUnavailable, err)
	}
	return out, nil
}

// InsertRow stores one raw ledger row; used by seeding tools and tests.
func (s *Store) InsertRow(ctx context.Context, ledgerID, sheetName string, r core.LedgerRow) error {
	const q = `
		INSERT INTO ledger_rows
			(ledger_id, sheet_name, customer_name, invoice_number, invoice_date,
			 invoice_amount, due_amount, amount_received, received_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q, ledgerID, sheetName, r.Customer, r.InvoiceNumber,
		rawText(r.InvoiceDate), rawText(r.InvoiceAmount), rawText(r.DueAmount),
		rawText(r.AmountReceived), rawText(r.ReceivedDate))
	if err != nil {
		return fmt.Errorf("insert ledger row: %w", err)
	}
	return nil
}

func rawValue(v sql.NullString) any {
	if !v.Valid || v.String == "" {
		return nil
	}
	return v.String
}

func rawText(v any) any {
	if v == nil {
		return nil
	}
	return fmt.Sprint(v)
}
