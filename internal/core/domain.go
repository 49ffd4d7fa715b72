package core

import (
	"errors"
	"strings"
	"time"
)

const (
	KindExpense Kind = "gasto"
	KindIncome  Kind = "ingreso"

	ARS Currency = "ARS"
	USD Currency = "USD"
)

type (
	Kind     string
	Currency string

	Money struct {
		Cents int64
	}

	// Movement is one recorded transaction. Year and Month are derived from
	// Timestamp at creation and are never edited independently.
	Movement struct {
		Timestamp   time.Time
		User        string
		Kind        Kind
		Category    string
		Description string
		Amount      Money
		Year        int
		Month       int
		Currency    Currency
	}

	// Budget is a monthly spending target per category. The category is a
	// case-insensitive key: at most one row per normalized category.
	Budget struct {
		Category string
		Monthly  Money
	}

	// Goal is a savings target, keyed by name with the same upsert
	// semantics as Budget.
	Goal struct {
		Name   string
		Target Money
	}
)

var (
	ErrMissingArguments    = errors.New("missing arguments")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidInstallments = errors.New("invalid installment count")
)

// NewMovement builds a movement with kind and currency normalized to their
// canonical case and year/month derived from ts.
func NewMovement(ts time.Time, user string, kind Kind, category, description string, amount Money, currency Currency) Movement {
	return Movement{
		Timestamp:   ts,
		User:        user,
		Kind:        Kind(strings.ToLower(string(kind))),
		Category:    category,
		Description: description,
		Amount:      amount,
		Year:        ts.Year(),
		Month:       int(ts.Month()),
		Currency:    Currency(strings.ToUpper(string(currency))),
	}
}

// SameKey compares identity fields (categories, goal names) the way the
// ledger does everywhere: trimmed and case-insensitive.
func SameKey(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
