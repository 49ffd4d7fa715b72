// Package storage implements the row-store ports on a local sqlite database.
// Each logical table keeps the spreadsheet's cell model: every cell is text,
// rows are ordered by insertion, and a (row, column) pair addresses a cell
// the same way it does in the sheets backends.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"finanzas/internal/sheets"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

var _ sheets.Store = (*Repository)(nil)

func NewRepository(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) Movements() sheets.Table {
	return &table{
		db:      r.db,
		name:    "movimientos",
		columns: []string{"fecha", "usuario", "tipo", "categoria", "descripcion", "monto", "anio", "mes", "moneda"},
		headers: sheets.MovementHeaders,
	}
}

func (r *Repository) Budgets() sheets.Table {
	return &table{
		db:      r.db,
		name:    "presupuestos",
		columns: []string{"categoria", "presupuesto_mensual"},
		headers: sheets.BudgetHeaders,
	}
}

func (r *Repository) Goals() sheets.Table {
	return &table{
		db:      r.db,
		name:    "objetivos",
		columns: []string{"nombre", "monto_objetivo"},
		headers: sheets.GoalHeaders,
	}
}

// table maps one SQL table to the Table port. columns are the SQL column
// names in sheet order; headers are the matching row-store header names.
type table struct {
	db      *sql.DB
	name    string
	columns []string
	headers []string
}

func (t *table) AppendRow(ctx context.Context, values []any) error {
	args := make([]any, len(t.columns))
	for i := range t.columns {
		if i < len(values) {
			args[i] = sheets.CellString(values[i])
		} else {
			args[i] = ""
		}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.columns)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.name, strings.Join(t.columns, ", "), placeholders)

	if _, err := t.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", t.name, err)
	}
	return nil
}

func (t *table) ReadAllRows(ctx context.Context) ([]sheets.Row, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", strings.Join(t.columns, ", "), t.name)
	rows, err := t.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", t.name, err)
	}
	defer rows.Close()

	var out []sheets.Row
	for rows.Next() {
		cells := make([]string, len(t.columns))
		dest := make([]any, len(t.columns))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", t.name, err)
		}
		row := make(sheets.Row, len(t.headers))
		for i, h := range t.headers {
			row[h] = cells[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", t.name, err)
	}
	return out, nil
}

func (t *table) UpdateCell(ctx context.Context, row, col int, value any) error {
	if row < 2 {
		return fmt.Errorf("row %d out of range", row)
	}
	if col < 1 || col > len(t.columns) {
		return fmt.Errorf("column %d out of range", col)
	}

	// Row 2 is the first data row; map it to the nth row by insertion order.
	var id int64
	query := fmt.Sprintf("SELECT id FROM %s ORDER BY id LIMIT 1 OFFSET ?", t.name)
	err := t.db.QueryRowContext(ctx, query, row-2).Scan(&id)
	if err == sql.ErrNoRows {
		return fmt.Errorf("row %d out of range", row)
	}
	if err != nil {
		return fmt.Errorf("locate row %d in %s: %w", row, t.name, err)
	}

	update := fmt.Sprintf("UPDATE %s SET %s = ? WHERE id = ?", t.name, t.columns[col-1])
	if _, err := t.db.ExecContext(ctx, update, sheets.CellString(value), id); err != nil {
		return fmt.Errorf("update %s cell: %w", t.name, err)
	}
	return nil
}
