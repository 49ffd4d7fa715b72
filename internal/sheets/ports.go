// Package sheets defines the ports for the row-oriented store backing the
// ledger: three logical tables (movements, budgets, goals), each a sequence
// of rows with a header row in row 1.
package sheets

import "context"

// Row is one data row, keyed by header name. Cells are strings: the store is
// schemaless and the domain layer parses what it needs.
type Row map[string]string

type (
	// Table is one logical table of the row store. Implementations treat the
	// table as eventually consistent: there is no isolation guarantee across
	// calls, and callers must not assume a read is still current by the time
	// they write.
	Table interface {
		// AppendRow appends one row of ordered field values.
		AppendRow(ctx context.Context, values []any) error

		// ReadAllRows returns every data row in order. The header row is not
		// included.
		ReadAllRows(ctx context.Context) ([]Row, error)

		// UpdateCell overwrites a single cell. Row and column are 1-indexed
		// and row 1 is the header, so the first data row is row 2.
		UpdateCell(ctx context.Context, row, col int, value any) error
	}

	// Store exposes the three ledger tables.
	Store interface {
		Movements() Table
		Budgets() Table
		Goals() Table
	}
)
