// Package memory holds ledger rows in memory. It backs tests and the
// default development backend, where rows are seeded from fixtures
// instead of a remote spreadsheet.
package memory

import (
	"context"
	"sync"

	"statements/internal/core"
	"statements/internal/ledger"
)

type Store struct {
	mu   sync.Mutex
	rows map[string][]core.LedgerRow
}

var _ ledger.RowSource = (*Store)(nil)

func New() *Store {
	return &Store{rows: make(map[string][]core.LedgerRow)}
}

// Seed replaces the rows of one ledger worksheet.
func (s *Store) Seed(ledgerID, sheetName string, rows []core.LedgerRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[key(ledgerID, sheetName)] = append([]core.LedgerRow(nil), rows...)
}

// FetchRows returns a copy of the seeded rows; callers can never reach
// the stored slice.
func (s *Store) FetchRows(_ context.Context, ledgerID, sheetName string) ([]core.LedgerRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.LedgerRow(nil), s.rows[key(ledgerID, sheetName)]...), nil
}

func key(ledgerID, sheetName string) string {
	return ledgerID + "/" + sheetName
}
