package sheets

import (
	"fmt"
	"strconv"
	"strings"
)

// Worksheet titles and header rows match the spreadsheet layout the ledger
// has always written, so an existing sheet keeps working unchanged.
const (
	MovementsSheet = "Movimientos"
	BudgetsSheet   = "Presupuestos"
	GoalsSheet     = "Objetivos"
)

// Movement column headers, in sheet order.
const (
	ColFecha       = "Fecha"
	ColUsuario     = "Usuario"
	ColTipo        = "Tipo"
	ColCategoria   = "Categoria"
	ColDescripcion = "Descripcion"
	ColMonto       = "Monto"
	ColAnio        = "Año"
	ColMes         = "Mes"
	ColMoneda      = "Moneda"

	ColPresupuestoMensual = "PresupuestoMensual"
	ColNombre             = "Nombre"
	ColMontoObjetivo      = "MontoObjetivo"
)

// KeyColumn and AmountColumn are the 1-indexed columns of the upsert tables
// (budgets and goals share the same two-column shape).
const (
	KeyColumn    = 1
	AmountColumn = 2
)

var (
	MovementHeaders = []string{ColFecha, ColUsuario, ColTipo, ColCategoria, ColDescripcion, ColMonto, ColAnio, ColMes, ColMoneda}
	BudgetHeaders   = []string{ColCategoria, ColPresupuestoMensual}
	GoalHeaders     = []string{ColNombre, ColMontoObjetivo}
)

// CellString renders an appended value the way every backend stores it, so a
// row read back is identical regardless of the adapter that wrote it.
func CellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
