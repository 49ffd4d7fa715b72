package ledger

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"finanzas/internal/core"
	"finanzas/internal/sheets"
)

// Registry upserts budgets and goals: a case-insensitive linear scan over the
// existing rows, updating the amount cell of the first match in place, or
// appending a new row when there is none. Keys are never deleted.
//
// The scan-then-write is not atomic at the store, so upserts for the same
// normalized key are serialized with a per-key mutex. Concurrent writers from
// other processes sharing the spreadsheet are not covered; the row store
// offers no primitive for that.
type Registry struct {
	budgets sheets.Table
	goals   sheets.Table

	mu   sync.Mutex
	keys map[string]*sync.Mutex
}

func NewRegistry(store sheets.Store) *Registry {
	return &Registry{
		budgets: store.Budgets(),
		goals:   store.Goals(),
		keys:    make(map[string]*sync.Mutex),
	}
}

func (g *Registry) SetBudget(ctx context.Context, category string, amount core.Money) error {
	return g.upsert(ctx, g.budgets, "budget", sheets.ColCategoria, category, amount)
}

func (g *Registry) SetGoal(ctx context.Context, name string, amount core.Money) error {
	return g.upsert(ctx, g.goals, "goal", sheets.ColNombre, name, amount)
}

func (g *Registry) upsert(ctx context.Context, t sheets.Table, kind, keyHeader, key string, amount core.Money) error {
	lock := g.keyLock(kind, key)
	lock.Lock()
	defer lock.Unlock()

	rows, err := t.ReadAllRows(ctx)
	if err != nil {
		return fmt.Errorf("read %ss: %w", kind, err)
	}

	for i, row := range rows {
		if core.SameKey(row[keyHeader], key) {
			// Data rows start at sheet row 2; only the amount cell moves.
			if err := t.UpdateCell(ctx, i+2, sheets.AmountColumn, amount.Decimal()); err != nil {
				return fmt.Errorf("update %s %q: %w", kind, key, err)
			}
			return nil
		}
	}

	if err := t.AppendRow(ctx, []any{key, amount.Decimal()}); err != nil {
		return fmt.Errorf("append %s %q: %w", kind, key, err)
	}
	return nil
}

// BudgetFor returns the monthly budget for a category, if one is set.
func (g *Registry) BudgetFor(ctx context.Context, category string) (core.Money, bool, error) {
	budgets, err := g.Budgets(ctx)
	if err != nil {
		return core.Money{}, false, err
	}
	for _, b := range budgets {
		if core.SameKey(b.Category, category) {
			return b.Monthly, true, nil
		}
	}
	return core.Money{}, false, nil
}

// Budgets returns every configured budget. Rows whose amount cell does not
// parse are skipped.
func (g *Registry) Budgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := g.budgets.ReadAllRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read budgets: %w", err)
	}
	out := make([]core.Budget, 0, len(rows))
	for _, row := range rows {
		amount, err := core.ParseAmount(row[sheets.ColPresupuestoMensual])
		if err != nil {
			continue
		}
		out = append(out, core.Budget{Category: row[sheets.ColCategoria], Monthly: amount})
	}
	return out, nil
}

func (g *Registry) keyLock(kind, key string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	k := kind + "\x00" + strings.ToLower(strings.TrimSpace(key))
	lock, ok := g.keys[k]
	if !ok {
		lock = &sync.Mutex{}
		g.keys[k] = lock
	}
	return lock
}
