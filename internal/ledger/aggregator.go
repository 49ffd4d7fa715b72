package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"finanzas/internal/core"
	"finanzas/internal/sheets"
)

// Summary holds the two monthly running totals. Aggregation covers ARS rows
// only; other currencies are excluded entirely, a deliberate simplification
// the reply text points out to the user.
type Summary struct {
	Income  core.Money
	Expense core.Money
}

func (s Summary) Balance() core.Money {
	return core.Money{Cents: s.Income.Cents - s.Expense.Cents}
}

type Aggregator struct {
	movements sheets.Table
}

func NewAggregator(store sheets.Store) *Aggregator {
	return &Aggregator{movements: store.Movements()}
}

// Summarize scans all movement rows and accumulates income and expense
// totals for the given year and month. A malformed row is skipped, never
// fatal: one bad cell must not abort the whole summary. An empty or
// fully-filtered set yields a zero Summary.
func (a *Aggregator) Summarize(ctx context.Context, year, month int) (Summary, error) {
	var sum Summary
	err := a.scan(ctx, year, month, func(row sheets.Row, amount core.Money) {
		switch core.Kind(strings.ToLower(strings.TrimSpace(row[sheets.ColTipo]))) {
		case core.KindIncome:
			sum.Income.Cents += amount.Cents
		case core.KindExpense:
			sum.Expense.Cents += amount.Cents
		}
	})
	if err != nil {
		return Summary{}, err
	}
	return sum, nil
}

// CategorySpend returns the ARS expense total for one category in the given
// month, compared case-insensitively.
func (a *Aggregator) CategorySpend(ctx context.Context, year, month int, category string) (core.Money, error) {
	var total core.Money
	err := a.scan(ctx, year, month, func(row sheets.Row, amount core.Money) {
		if core.Kind(strings.ToLower(strings.TrimSpace(row[sheets.ColTipo]))) != core.KindExpense {
			return
		}
		if !core.SameKey(row[sheets.ColCategoria], category) {
			return
		}
		total.Cents += amount.Cents
	})
	if err != nil {
		return core.Money{}, err
	}
	return total, nil
}

func (a *Aggregator) scan(ctx context.Context, year, month int, visit func(sheets.Row, core.Money)) error {
	rows, err := a.movements.ReadAllRows(ctx)
	if err != nil {
		return fmt.Errorf("read movements: %w", err)
	}

	for _, row := range rows {
		y, err := strconv.Atoi(strings.TrimSpace(row[sheets.ColAnio]))
		if err != nil {
			continue
		}
		m, err := strconv.Atoi(strings.TrimSpace(row[sheets.ColMes]))
		if err != nil {
			continue
		}
		if y != year || m != month {
			continue
		}

		currency := strings.ToUpper(strings.TrimSpace(row[sheets.ColMoneda]))
		if currency == "" {
			currency = string(core.ARS)
		}
		if currency != string(core.ARS) {
			continue
		}

		amount, err := parseAmountCell(row[sheets.ColMonto])
		if err != nil {
			continue
		}
		visit(row, amount)
	}
	return nil
}

// parseAmountCell tolerates the empty cell an old spreadsheet row may have.
func parseAmountCell(cell string) (core.Money, error) {
	if strings.TrimSpace(cell) == "" {
		return core.Money{}, nil
	}
	return core.ParseAmount(cell)
}
