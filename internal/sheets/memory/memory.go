// Package memory implements the row-store ports in process memory. It is the
// default backend for local runs and the store fake used by tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"finanzas/internal/sheets"
)

type Store struct {
	movements *table
	budgets   *table
	goals     *table
}

func New() *Store {
	return &Store{
		movements: newTable(sheets.MovementHeaders),
		budgets:   newTable(sheets.BudgetHeaders),
		goals:     newTable(sheets.GoalHeaders),
	}
}

func (s *Store) Movements() sheets.Table { return s.movements }
func (s *Store) Budgets() sheets.Table   { return s.budgets }
func (s *Store) Goals() sheets.Table     { return s.goals }

type table struct {
	mu      sync.Mutex
	headers []string
	rows    [][]string
}

func newTable(headers []string) *table {
	return &table{headers: append([]string(nil), headers...)}
}

func (t *table) AppendRow(_ context.Context, values []any) error {
	row := make([]string, len(values))
	for i, v := range values {
		row[i] = sheets.CellString(v)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, row)
	return nil
}

func (t *table) ReadAllRows(_ context.Context) ([]sheets.Row, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]sheets.Row, 0, len(t.rows))
	for _, cells := range t.rows {
		row := make(sheets.Row, len(t.headers))
		for i, h := range t.headers {
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (t *table) UpdateCell(_ context.Context, row, col int, value any) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	// Row 1 is the header; data rows start at 2.
	idx := row - 2
	if idx < 0 || idx >= len(t.rows) {
		return fmt.Errorf("row %d out of range", row)
	}
	if col < 1 || col > len(t.headers) {
		return fmt.Errorf("column %d out of range", col)
	}
	cells := t.rows[idx]
	for len(cells) < col {
		cells = append(cells, "")
	}
	cells[col-1] = sheets.CellString(value)
	t.rows[idx] = cells
	return nil
}
