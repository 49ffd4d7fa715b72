package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"finanzas/internal/core"
	"finanzas/internal/sheets"
	"finanzas/internal/sheets/memory"
)

func TestRecordAppendsOneDerivedRow(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	rec := NewRecorder(store, nil, "Mica")

	ts := time.Date(2024, time.July, 9, 15, 4, 5, 0, time.UTC)
	m, err := rec.Record(ctx, core.KindExpense, "comida", core.Money{Cents: 500000}, "empanadas", core.ARS, ts)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if m.Year != 2024 || m.Month != 7 {
		t.Fatalf("derived year/month = %d/%d", m.Year, m.Month)
	}

	rows, err := store.Movements().ReadAllRows(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row[sheets.ColAnio] != "2024" || row[sheets.ColMes] != "7" {
		t.Fatalf("year/month cells: %v", row)
	}
	if row[sheets.ColMonto] != "5000.00" {
		t.Fatalf("amount cell = %q", row[sheets.ColMonto])
	}
	if row[sheets.ColTipo] != "gasto" || row[sheets.ColMoneda] != "ARS" {
		t.Fatalf("kind/currency cells: %v", row)
	}
	if row[sheets.ColUsuario] != "Mica" || row[sheets.ColDescripcion] != "empanadas" {
		t.Fatalf("user/description cells: %v", row)
	}
}

func TestRecordDefaultsTimestamp(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	rec := NewRecorder(store, nil, "Mica")
	fixed := time.Date(2023, time.March, 2, 10, 0, 0, 0, time.UTC)
	rec.now = func() time.Time { return fixed }

	m, err := rec.Record(ctx, core.KindIncome, "sueldo", core.Money{Cents: 100000000}, "", core.ARS, time.Time{})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if !m.Timestamp.Equal(fixed) {
		t.Fatalf("timestamp = %s, want %s", m.Timestamp, fixed)
	}
	if m.Year != 2023 || m.Month != 3 {
		t.Fatalf("derived year/month = %d/%d", m.Year, m.Month)
	}
}

type capturedEvent struct {
	movements []core.Movement
	err       error
}

func (c *capturedEvent) PublishMovementRecorded(_ context.Context, m core.Movement) error {
	c.movements = append(c.movements, m)
	return c.err
}

func TestRecordPublishesEvent(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	events := &capturedEvent{}
	rec := NewRecorder(store, events, "Mica")

	_, err := rec.Record(ctx, core.KindExpense, "hogar", core.Money{Cents: 1000}, "", core.ARS,
		time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(events.movements) != 1 || events.movements[0].Category != "hogar" {
		t.Fatalf("event not published: %+v", events.movements)
	}
}

func TestRecordPublishFailureDoesNotFail(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	events := &capturedEvent{err: errors.New("broker down")}
	rec := NewRecorder(store, events, "Mica")

	if _, err := rec.Record(ctx, core.KindExpense, "hogar", core.Money{Cents: 1000}, "", core.ARS,
		time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("publish failure must not fail recording: %v", err)
	}
	rows, _ := store.Movements().ReadAllRows(ctx)
	if len(rows) != 1 {
		t.Fatalf("movement not persisted")
	}
}
