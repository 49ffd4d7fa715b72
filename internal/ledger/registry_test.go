package ledger

import (
	"context"
	"sync"
	"testing"

	"finanzas/internal/core"
	"finanzas/internal/sheets"
	"finanzas/internal/sheets/memory"
)

func TestSetBudgetUpsert(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	reg := NewRegistry(store)

	if err := reg.SetBudget(ctx, "Comida", core.Money{Cents: 100000}); err != nil {
		t.Fatalf("first set: %v", err)
	}
	if err := reg.SetBudget(ctx, "Comida", core.Money{Cents: 100000}); err != nil {
		t.Fatalf("second set: %v", err)
	}

	rows, _ := store.Budgets().ReadAllRows(ctx)
	if len(rows) != 1 {
		t.Fatalf("upsert created duplicates: %d rows", len(rows))
	}
	if rows[0][sheets.ColCategoria] != "Comida" || rows[0][sheets.ColPresupuestoMensual] != "1000.00" {
		t.Fatalf("unexpected row: %v", rows[0])
	}
}

func TestSetBudgetCaseInsensitiveKey(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	reg := NewRegistry(store)

	_ = reg.SetBudget(ctx, "Comida", core.Money{Cents: 100000})
	_ = reg.SetBudget(ctx, "COMIDA", core.Money{Cents: 250000})

	rows, _ := store.Budgets().ReadAllRows(ctx)
	if len(rows) != 1 {
		t.Fatalf("case-insensitive match failed: %d rows", len(rows))
	}
	// The original category's case is preserved; only the amount moves.
	if rows[0][sheets.ColCategoria] != "Comida" {
		t.Fatalf("category cell rewritten: %v", rows[0])
	}
	if rows[0][sheets.ColPresupuestoMensual] != "2500.00" {
		t.Fatalf("amount not updated: %v", rows[0])
	}
}

func TestSetBudgetUpdatesMatchingRowOnly(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	reg := NewRegistry(store)

	_ = reg.SetBudget(ctx, "Comida", core.Money{Cents: 100000})
	_ = reg.SetBudget(ctx, "Hogar", core.Money{Cents: 50000})
	_ = reg.SetBudget(ctx, "hogar", core.Money{Cents: 75000})

	rows, _ := store.Budgets().ReadAllRows(ctx)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0][sheets.ColPresupuestoMensual] != "1000.00" {
		t.Fatalf("wrong row updated: %v", rows[0])
	}
	if rows[1][sheets.ColPresupuestoMensual] != "750.00" {
		t.Fatalf("second row not updated: %v", rows[1])
	}
}

func TestSetGoalUpsert(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	reg := NewRegistry(store)

	_ = reg.SetGoal(ctx, "viaje_brasil", core.Money{Cents: 30000000})
	_ = reg.SetGoal(ctx, "Viaje_Brasil", core.Money{Cents: 45000000})

	rows, _ := store.Goals().ReadAllRows(ctx)
	if len(rows) != 1 {
		t.Fatalf("goal upsert created duplicates: %d rows", len(rows))
	}
	if rows[0][sheets.ColMontoObjetivo] != "450000.00" {
		t.Fatalf("amount not updated: %v", rows[0])
	}
}

func TestConcurrentUpsertsSameKey(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	reg := NewRegistry(store)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = reg.SetBudget(ctx, "comida", core.Money{Cents: int64(n+1) * 100})
		}(i)
	}
	wg.Wait()

	rows, _ := store.Budgets().ReadAllRows(ctx)
	if len(rows) != 1 {
		t.Fatalf("concurrent upserts on one key must not duplicate: %d rows", len(rows))
	}
}

func TestBudgetFor(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	reg := NewRegistry(store)

	_ = reg.SetBudget(ctx, "Comida", core.Money{Cents: 100000})

	amount, ok, err := reg.BudgetFor(ctx, "comida")
	if err != nil || !ok {
		t.Fatalf("budget lookup: ok=%v err=%v", ok, err)
	}
	if amount.Cents != 100000 {
		t.Fatalf("amount = %d", amount.Cents)
	}

	_, ok, err = reg.BudgetFor(ctx, "viajes")
	if err != nil || ok {
		t.Fatalf("missing budget should report ok=false, got ok=%v err=%v", ok, err)
	}
}
