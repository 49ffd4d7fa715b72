package bot

import (
	"strconv"
	"strings"

	"finanzas/internal/core"
)

// MovementArgs is a parsed "categoria monto [descripcion...]" argument list.
type MovementArgs struct {
	Category    string
	Amount      core.Money
	Description string
}

// ParseMovementArgs requires at least category and amount. Remaining tokens
// are rejoined with single spaces as the description, which may be empty.
func ParseMovementArgs(args []string) (MovementArgs, error) {
	if len(args) < 2 {
		return MovementArgs{}, core.ErrMissingArguments
	}
	amount, err := core.ParseAmount(args[1])
	if err != nil {
		return MovementArgs{}, err
	}
	return MovementArgs{
		Category:    args[0],
		Amount:      amount,
		Description: strings.Join(args[2:], " "),
	}, nil
}

// InstallmentArgs is a parsed "categoria monto [descripcion...] cantidad"
// argument list. The count is always the last token.
type InstallmentArgs struct {
	Category    string
	Total       core.Money
	Description string
	Count       int
}

func ParseInstallmentArgs(args []string) (InstallmentArgs, error) {
	if len(args) < 3 {
		return InstallmentArgs{}, core.ErrMissingArguments
	}
	total, err := core.ParseAmount(args[1])
	if err != nil {
		return InstallmentArgs{}, err
	}
	count, err := strconv.Atoi(args[len(args)-1])
	if err != nil || count <= 0 {
		return InstallmentArgs{}, core.ErrInvalidInstallments
	}
	return InstallmentArgs{
		Category:    args[0],
		Total:       total,
		Description: strings.Join(args[2:len(args)-1], " "),
		Count:       count,
	}, nil
}
