// Package core holds the ledger domain: movements, budgets, goals and the
// amount/date arithmetic they rely on.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a decimal string to Money with half-up rounding on the
// third decimal place. It accepts both dot (12.34) and comma (12,34) decimal
// separators; the comma is normalized to a dot before parsing. Signs are
// rejected, zero is allowed: amounts are non-negative by construction.
//
// Examples:
//
//	ParseAmount("5,5")    -> 550 cents
//	ParseAmount("1234.56") -> 123456 cents
//	ParseAmount("abc")    -> ErrInvalidAmount
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		if fracPart == "" {
			// Bare "." input
			return Money{}, ErrInvalidAmount
		}
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return Money{}, ErrInvalidAmount
	}
	// First two fractional digits, half-up on the third.
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return Money{Cents: iv*100 + fracCents}, nil
}

// SplitInstallment returns round(total/count, 2) with half-up rounding. The
// quotient is computed once and applied identically to every installment;
// count*per may drift from total by up to count half-cents. That drift is the
// documented behavior, not something to redistribute.
func SplitInstallment(total Money, count int) (Money, error) {
	if count <= 0 {
		return Money{}, ErrInvalidInstallments
	}
	n := int64(count)
	return Money{Cents: (2*total.Cents + n) / (2 * n)}, nil
}

// Float returns the amount as a float64 for display purposes only. Use cents
// for arithmetic.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// Decimal returns the canonical two-decimal string form ("33.33") used when
// writing amount cells to the row store.
func (m Money) Decimal() string {
	return strconv.FormatFloat(m.Float(), 'f', 2, 64)
}
