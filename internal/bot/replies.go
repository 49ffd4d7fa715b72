package bot

import (
	"fmt"
	"strconv"
	"strings"

	"finanzas/internal/core"
	"finanzas/internal/ledger"
)

// Reply templates. All rendering is pure: domain result in, fixed text out.

const (
	ReplyUnknown = "❓ Comando no reconocido. Usa /help para ver las opciones."
	ReplyFault   = "⚠️ Ocurrió un error procesando el comando. Probá de nuevo."

	ReplyInstallmentsUsage = "❌ Faltan datos.\nUsa: /cuotas categoria monto descripcion cantidad\nEj: /cuotas hogar 30000 pava electrica 3"
	ReplyInvalidCount      = "❌ La cantidad de cuotas debe ser un número entero mayor a 0.\nEj: /cuotas hogar 30000 pava electrica 3"
	ReplyInvalidAmount     = "❌ El monto no es válido."

	ReplyBudgetUsage = "❌ Usa: /presupuesto categoria monto\nEj: /presupuesto comida 50000"
	ReplyGoalUsage   = "❌ Usa: /objetivo nombre monto\nEj: /objetivo viaje_brasil 300000"
)

func HelpReply(name string) string {
	return "Hola " + name + " 👋\n" +
		"Soy tu bot de finanzas.\n\n" +
		"Comandos disponibles:\n" +
		"/gasto categoria monto descripcion\n" +
		"/gasto_usd categoria monto descripcion\n" +
		"/ingreso categoria monto descripcion\n" +
		"/ingreso_usd categoria monto descripcion\n" +
		"/cuotas categoria monto descripcion cantidad\n" +
		"/resumen - Resumen del mes actual\n" +
		"/saldo - Ingresos - Gastos del mes actual\n" +
		"/presupuesto categoria monto\n" +
		"/objetivo nombre monto\n" +
		"/help - Ver este mensaje otra vez"
}

func MovementReply(kind core.Kind, currency core.Currency, amount core.Money, category string) string {
	return fmt.Sprintf("✅ %s registrado: %s%s en '%s' (%s).",
		capitalize(string(kind)), currencySymbol(currency), amount.Decimal(), category, currency)
}

func MovementUsageReply(kind core.Kind) string {
	return fmt.Sprintf("❌ Faltan datos. Usa: categoria monto descripcion\nEjemplo: /%s comida 5000 empanadas", kind)
}

func MovementInvalidAmountReply(kind core.Kind) string {
	return fmt.Sprintf("❌ El monto no es válido.\nEjemplo: /%s comida 5000 empanadas", kind)
}

func InstallmentsReply(total core.Money, count int, per core.Money) string {
	return fmt.Sprintf("✅ Compra en cuotas registrada.\nTotal: $%s en %d cuotas de $%s.",
		total.Decimal(), count, per.Decimal())
}

func SummaryReply(year, month int, s ledger.Summary) string {
	return fmt.Sprintf("📅 Resumen de %d/%d (solo ARS)\n\n💰 Ingresos: $%s\n💸 Gastos: $%s\n🧾 Saldo: $%s",
		month, year, formatAmount(s.Income), formatAmount(s.Expense), formatAmount(s.Balance()))
}

func BalanceReply(s ledger.Summary) string {
	return fmt.Sprintf("💼 Saldo del mes actual (ARS): $%s", formatAmount(s.Balance()))
}

func BudgetReply(category string, amount core.Money) string {
	return fmt.Sprintf("✅ Presupuesto guardado para '%s': $%s por mes.", category, amount.Decimal())
}

func GoalReply(name string, amount core.Money) string {
	return fmt.Sprintf("✅ Objetivo '%s' guardado por $%s.", name, amount.Decimal())
}

func currencySymbol(c core.Currency) string {
	if c == core.ARS {
		return "$"
	}
	return "USD "
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// formatAmount renders with thousands grouping and two decimals ("1,234.56")
// for the summary texts. Negative balances keep the sign before the digits.
func formatAmount(m core.Money) string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	digits := strconv.FormatInt(cents/100, 10)
	var b strings.Builder
	b.WriteString(sign)
	for i := 0; i < len(digits); i++ {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(digits[i])
	}
	return fmt.Sprintf("%s.%02d", b.String(), cents%100)
}
