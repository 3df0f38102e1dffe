package statement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"statements/internal/cache"
	"statements/internal/core"
	"statements/internal/ledger"
)

// Service fetches ledger rows and aggregates statements on demand. Rows
// are fetched fresh per ledger selection; the short-lived cache only
// smooths over repeated requests against the same ledger.
type Service struct {
	source ledger.RowSource
	sheet  string
	rows   *cache.LRUCache[[]core.LedgerRow]
}

// NewService wires a row source with the worksheet name to read.
func NewService(source ledger.RowSource, sheetName string) *Service {
	return &Service{
		source: source,
		sheet:  sheetName,
		rows:   cache.NewLRUCache[[]core.LedgerRow](16, 5*time.Minute),
	}
}

// Rows returns the raw rows of a ledger, consulting the cache first.
func (s *Service) Rows(ctx context.Context, ledgerID string) ([]core.LedgerRow, error) {
	key := ledgerID + "/" + s.sheet
	if rows, ok := s.rows.Get(key); ok {
		return rows, nil
	}
	rows, err := s.source.FetchRows(ctx, ledgerID, s.sheet)
	if err != nil {
		return nil, fmt.Errorf("fetch rows: %w", err)
	}
	slog.InfoContext(ctx, "Fetched ledger rows", "ledger", ledgerID, "sheet", s.sheet, "rows", len(rows))
	s.rows.Set(key, rows)
	return rows, nil
}

// Customers lists the distinct customer names of a ledger.
func (s *Service) Customers(ctx context.Context, ledgerID string) ([]string, error) {
	rows, err := s.Rows(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	return Customers(rows), nil
}

// Statement aggregates one customer's statement for the given period.
func (s *Service) Statement(ctx context.Context, ledgerID, customer string, period Period) (*Statement, error) {
	rows, err := s.Rows(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	st, err := Aggregate(rows, customer, period)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "Aggregated statement",
		"ledger", ledgerID, "customer", customer, "lines", len(st.Lines), "closing", st.Closing.StringFixed(2))
	return st, nil
}

// Invalidate drops any cached rows for a ledger, forcing the next
// request to hit the source.
func (s *Service) Invalidate(ledgerID string) {
	s.rows.Delete(ledgerID + "/" + s.sheet)
}

// CleanExpired implements cache.Cleaner so the service can join the
// cache manager's cleanup rotation.
func (s *Service) CleanExpired() int {
	return s.rows.CleanExpired()
}
