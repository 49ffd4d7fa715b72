package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"finanzas/internal/core"
)

// Scheduler turns one purchase into count dated expense movements spaced one
// calendar month apart.
type Scheduler struct {
	recorder *Recorder
}

func NewScheduler(recorder *Recorder) *Scheduler {
	return &Scheduler{recorder: recorder}
}

// Schedule records count ARS expense movements for the purchase. The
// per-installment amount is round(total/count, 2), computed once; due dates
// advance from start by whole calendar months with end-of-month clamping, and
// each description gets a "(cuota i/count)" suffix.
//
// Each append is an independent store call with no rollback: every
// installment is attempted even after a failure, so a partial failure leaves
// a partially-recorded schedule. The first error is returned once all
// appends have been tried. Returns the per-installment amount for the
// confirmation message.
func (s *Scheduler) Schedule(ctx context.Context, category string, total core.Money, description string, count int, start time.Time) (core.Money, error) {
	per, err := core.SplitInstallment(total, count)
	if err != nil {
		return core.Money{}, err
	}

	var firstErr error
	for i := 0; i < count; i++ {
		due := core.AddMonths(start, i)
		desc := strings.TrimSpace(fmt.Sprintf("%s (cuota %d/%d)", description, i+1, count))
		if _, err := s.recorder.Record(ctx, core.KindExpense, category, per, desc, core.ARS, due); err != nil {
			slog.ErrorContext(ctx, "Failed to record installment",
				"category", category,
				"installment", i+1,
				"of", count,
				"error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return per, firstErr
}
