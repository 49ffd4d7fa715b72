package bot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"finanzas/internal/ledger"
	"finanzas/internal/sheets"
	"finanzas/internal/sheets/memory"
)

func newTestRouter(store sheets.Store) *Router {
	recorder := ledger.NewRecorder(store, nil, "Mica")
	r := NewRouter(
		recorder,
		ledger.NewAggregator(store),
		ledger.NewRegistry(store),
		ledger.NewScheduler(recorder),
		"Mica",
	)
	r.now = func() time.Time {
		return time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC)
	}
	return r
}

func handle(t *testing.T, r *Router, text string) string {
	t.Helper()
	reply, ok := r.Handle(context.Background(), Inbound{ChatID: 1, Sender: "Mica", Text: text})
	if !ok {
		t.Fatalf("expected a reply for %q", text)
	}
	return reply
}

func TestHandleHelp(t *testing.T) {
	r := newTestRouter(memory.New())
	for _, cmd := range []string{"/start", "/help"} {
		reply := handle(t, r, cmd)
		if !strings.HasPrefix(reply, "Hola Mica") {
			t.Fatalf("%s reply = %q", cmd, reply)
		}
	}
}

func TestHandleHelpDefaultUser(t *testing.T) {
	r := newTestRouter(memory.New())
	reply, ok := r.Handle(context.Background(), Inbound{ChatID: 1, Text: "/help"})
	if !ok || !strings.HasPrefix(reply, "Hola Mica") {
		t.Fatalf("reply = %q, ok = %v", reply, ok)
	}
}

func TestHandleMovementCommands(t *testing.T) {
	tests := []struct {
		text         string
		wantKind     string
		wantCurrency string
		wantReply    string
	}{
		{"/gasto comida 5000 empanadas", "gasto", "ARS", "✅ Gasto registrado: $5000.00 en 'comida' (ARS)."},
		{"/gasto_usd viajes 100 hotel", "gasto", "USD", "✅ Gasto registrado: USD 100.00 en 'viajes' (USD)."},
		{"/ingreso sueldo 300000", "ingreso", "ARS", "✅ Ingreso registrado: $300000.00 en 'sueldo' (ARS)."},
		{"/ingreso_usd freelance 250 proyecto", "ingreso", "USD", "✅ Ingreso registrado: USD 250.00 en 'freelance' (USD)."},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			store := memory.New()
			r := newTestRouter(store)

			if got := handle(t, r, tt.text); got != tt.wantReply {
				t.Fatalf("reply = %q, want %q", got, tt.wantReply)
			}

			rows, _ := store.Movements().ReadAllRows(context.Background())
			if len(rows) != 1 {
				t.Fatalf("got %d movement rows", len(rows))
			}
			if rows[0][sheets.ColTipo] != tt.wantKind || rows[0][sheets.ColMoneda] != tt.wantCurrency {
				t.Fatalf("row kind/currency = %q/%q", rows[0][sheets.ColTipo], rows[0][sheets.ColMoneda])
			}
			if rows[0][sheets.ColUsuario] != "Mica" {
				t.Fatalf("row user = %q", rows[0][sheets.ColUsuario])
			}
		})
	}
}

func TestHandleMovementErrors(t *testing.T) {
	r := newTestRouter(memory.New())

	reply := handle(t, r, "/gasto comida")
	if !strings.Contains(reply, "Faltan datos") || !strings.Contains(reply, "/gasto comida 5000 empanadas") {
		t.Fatalf("missing-args reply = %q", reply)
	}

	reply = handle(t, r, "/ingreso sueldo mucho")
	if !strings.Contains(reply, "El monto no es válido") || !strings.Contains(reply, "/ingreso") {
		t.Fatalf("invalid-amount reply = %q", reply)
	}
}

func TestHandleInstallments(t *testing.T) {
	store := memory.New()
	r := newTestRouter(store)

	reply := handle(t, r, "/cuotas hogar 30000 pava electrica 3")
	if !strings.Contains(reply, "Total: $30000.00 en 3 cuotas de $10000.00.") {
		t.Fatalf("reply = %q", reply)
	}

	rows, _ := store.Movements().ReadAllRows(context.Background())
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[1][sheets.ColFecha][:10] != "2024-08-15" {
		t.Fatalf("second installment date = %q", rows[1][sheets.ColFecha])
	}
}

func TestHandleInstallmentErrors(t *testing.T) {
	r := newTestRouter(memory.New())

	if got := handle(t, r, "/cuotas hogar 30000"); got != ReplyInstallmentsUsage {
		t.Fatalf("usage reply = %q", got)
	}
	if got := handle(t, r, "/cuotas hogar 30000 pava 0"); got != ReplyInvalidCount {
		t.Fatalf("count reply = %q", got)
	}
	if got := handle(t, r, "/cuotas hogar caro 3"); got != ReplyInvalidAmount {
		t.Fatalf("amount reply = %q", got)
	}
}

func TestHandleSummaryAndBalance(t *testing.T) {
	store := memory.New()
	r := newTestRouter(store)

	handle(t, r, "/ingreso sueldo 300000")
	handle(t, r, "/gasto comida 5000")
	handle(t, r, "/gasto_usd viajes 100") // USD, excluded from totals

	reply := handle(t, r, "/resumen")
	if !strings.Contains(reply, "Resumen de 7/2024") {
		t.Fatalf("summary header: %q", reply)
	}
	if !strings.Contains(reply, "Ingresos: $300,000.00") || !strings.Contains(reply, "Gastos: $5,000.00") {
		t.Fatalf("summary totals: %q", reply)
	}

	reply = handle(t, r, "/saldo")
	if !strings.Contains(reply, "$295,000.00") {
		t.Fatalf("balance reply: %q", reply)
	}
}

func TestHandleSummaryEmptyMonth(t *testing.T) {
	r := newTestRouter(memory.New())
	reply := handle(t, r, "/resumen")
	if !strings.Contains(reply, "Ingresos: $0.00") || !strings.Contains(reply, "Gastos: $0.00") {
		t.Fatalf("empty summary: %q", reply)
	}
}

func TestHandleBudgetAndGoal(t *testing.T) {
	store := memory.New()
	r := newTestRouter(store)

	reply := handle(t, r, "/presupuesto comida 50000")
	if !strings.Contains(reply, "Presupuesto guardado para 'comida': $50000.00") {
		t.Fatalf("budget reply = %q", reply)
	}

	// Upsert: same category again must not add a second row.
	handle(t, r, "/presupuesto Comida 60000")
	rows, _ := store.Budgets().ReadAllRows(context.Background())
	if len(rows) != 1 {
		t.Fatalf("got %d budget rows, want 1", len(rows))
	}
	if rows[0][sheets.ColPresupuestoMensual] != "60000.00" {
		t.Fatalf("budget amount = %q", rows[0][sheets.ColPresupuestoMensual])
	}

	reply = handle(t, r, "/objetivo viaje_brasil 300000")
	if !strings.Contains(reply, "Objetivo 'viaje_brasil' guardado por $300000.00") {
		t.Fatalf("goal reply = %q", reply)
	}

	if got := handle(t, r, "/presupuesto comida"); got != ReplyBudgetUsage {
		t.Fatalf("budget usage reply = %q", got)
	}
	if got := handle(t, r, "/objetivo viaje"); got != ReplyGoalUsage {
		t.Fatalf("goal usage reply = %q", got)
	}
	if got := handle(t, r, "/presupuesto comida mucho"); got != ReplyInvalidAmount {
		t.Fatalf("budget invalid amount reply = %q", got)
	}
}

func TestHandleUnknownCommand(t *testing.T) {
	r := newTestRouter(memory.New())
	if got := handle(t, r, "/prestamo 1000"); got != ReplyUnknown {
		t.Fatalf("reply = %q", got)
	}
	if got := handle(t, r, "hola bot"); got != ReplyUnknown {
		t.Fatalf("non-command text reply = %q", got)
	}
}

func TestHandleEmptyTextIsNoOp(t *testing.T) {
	r := newTestRouter(memory.New())
	if _, ok := r.Handle(context.Background(), Inbound{ChatID: 1, Text: "  "}); ok {
		t.Fatal("whitespace-only text must not produce a reply")
	}
}

// brokenStore fails every operation so handler faults can be exercised.
type brokenStore struct{}

func (brokenStore) Movements() sheets.Table { return brokenTable{} }
func (brokenStore) Budgets() sheets.Table   { return brokenTable{} }
func (brokenStore) Goals() sheets.Table     { return brokenTable{} }

type brokenTable struct{}

func (brokenTable) AppendRow(context.Context, []any) error { return errors.New("store down") }
func (brokenTable) ReadAllRows(context.Context) ([]sheets.Row, error) {
	return nil, errors.New("store down")
}
func (brokenTable) UpdateCell(context.Context, int, int, any) error { return errors.New("store down") }

func TestHandleStoreFailureIsContained(t *testing.T) {
	r := newTestRouter(brokenStore{})

	for _, cmd := range []string{
		"/gasto comida 5000",
		"/cuotas hogar 30000 pava 3",
		"/resumen",
		"/saldo",
		"/presupuesto comida 50000",
		"/objetivo viaje 1000",
	} {
		if got := handle(t, r, cmd); got != ReplyFault {
			t.Fatalf("%s reply = %q, want fault reply", cmd, got)
		}
	}

	// The router keeps serving after a failure.
	if got := handle(t, r, "/help"); !strings.HasPrefix(got, "Hola") {
		t.Fatalf("post-failure help reply = %q", got)
	}
}

// panicStore blows up on append; the router must recover.
type panicStore struct{ sheets.Store }

func (panicStore) Movements() sheets.Table { return panicTable{} }

type panicTable struct{}

func (panicTable) AppendRow(context.Context, []any) error { panic("corrupted row buffer") }
func (panicTable) ReadAllRows(context.Context) ([]sheets.Row, error) {
	return nil, nil
}
func (panicTable) UpdateCell(context.Context, int, int, any) error { return nil }

func TestHandleRecoversFromPanic(t *testing.T) {
	r := newTestRouter(panicStore{Store: memory.New()})

	if got := handle(t, r, "/gasto comida 5000"); got != ReplyFault {
		t.Fatalf("panic reply = %q, want fault reply", got)
	}
	if got := handle(t, r, "/help"); !strings.HasPrefix(got, "Hola") {
		t.Fatalf("post-panic help reply = %q", got)
	}
}

func TestHandleCommaAmount(t *testing.T) {
	store := memory.New()
	r := newTestRouter(store)

	handle(t, r, "/gasto comida 5,5 cafe")
	rows, _ := store.Movements().ReadAllRows(context.Background())
	if rows[0][sheets.ColMonto] != "5.50" {
		t.Fatalf("amount cell = %q, want 5.50", rows[0][sheets.ColMonto])
	}
}
