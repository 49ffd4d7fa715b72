package bot

import (
	"strings"
	"testing"

	"finanzas/internal/core"
	"finanzas/internal/ledger"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{550, "5.50"},
		{123456, "1,234.56"},
		{100000000, "1,000,000.00"},
		{-250075, "-2,500.75"},
	}
	for _, tt := range tests {
		if got := formatAmount(core.Money{Cents: tt.cents}); got != tt.want {
			t.Errorf("formatAmount(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestMovementReply(t *testing.T) {
	got := MovementReply(core.KindExpense, core.ARS, core.Money{Cents: 500000}, "comida")
	if got != "✅ Gasto registrado: $5000.00 en 'comida' (ARS)." {
		t.Fatalf("reply = %q", got)
	}

	got = MovementReply(core.KindIncome, core.USD, core.Money{Cents: 10000}, "sueldo")
	if !strings.Contains(got, "Ingreso registrado: USD 100.00") {
		t.Fatalf("reply = %q", got)
	}
}

func TestSummaryReplyOrderAndTotals(t *testing.T) {
	s := ledger.Summary{
		Income:  core.Money{Cents: 12345600},
		Expense: core.Money{Cents: 2345600},
	}
	got := SummaryReply(2024, 7, s)
	if !strings.Contains(got, "Resumen de 7/2024") {
		t.Fatalf("month/year order wrong: %q", got)
	}
	if !strings.Contains(got, "Ingresos: $123,456.00") {
		t.Fatalf("income missing: %q", got)
	}
	if !strings.Contains(got, "Gastos: $23,456.00") {
		t.Fatalf("expense missing: %q", got)
	}
	if !strings.Contains(got, "Saldo: $100,000.00") {
		t.Fatalf("balance missing: %q", got)
	}
}

func TestBalanceReplyNegative(t *testing.T) {
	s := ledger.Summary{Expense: core.Money{Cents: 150050}}
	got := BalanceReply(s)
	if !strings.Contains(got, "$-1,500.50") {
		t.Fatalf("reply = %q", got)
	}
}

func TestHelpReplyListsEveryCommand(t *testing.T) {
	got := HelpReply("Mica")
	for _, cmd := range []string{
		"/gasto", "/gasto_usd", "/ingreso", "/ingreso_usd",
		"/cuotas", "/resumen", "/saldo", "/presupuesto", "/objetivo", "/help",
	} {
		if !strings.Contains(got, cmd) {
			t.Errorf("help text missing %s", cmd)
		}
	}
	if !strings.HasPrefix(got, "Hola Mica") {
		t.Errorf("greeting = %q", got[:20])
	}
}
