// Package ledger defines the ports for reading raw ledger rows from a
// data source. Adapters live in the subpackages (google, sqlite, memory).
package ledger

import (
	"context"

	"statements/internal/core"
)

// RowSource fetches every invoice/payment row of one ledger. Values must
// come back raw (unformatted) so downstream normalization stays
// deterministic. A source with fewer than three physical lines yields an
// empty slice: line 1 is a banner, line 2 the header row, data starts at
// line 3.
type RowSource interface {
	FetchRows(ctx context.Context, ledgerID, sheetName string) ([]core.LedgerRow, error)
}
