// Package ledger holds the domain services: recording movements, monthly
// aggregation, budget/goal upserts and installment scheduling. Every service
// reads the row store fresh on each call; the store is the single source of
// truth and nothing is cached here.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"finanzas/internal/core"
	"finanzas/internal/sheets"
)

// EventPublisher receives a notification after a movement is persisted.
// Publishing is best-effort: a publish failure never fails the recording.
type EventPublisher interface {
	PublishMovementRecorded(ctx context.Context, m core.Movement) error
}

type Recorder struct {
	movements sheets.Table
	events    EventPublisher // optional
	user      string
	now       func() time.Time
}

func NewRecorder(store sheets.Store, events EventPublisher, user string) *Recorder {
	return &Recorder{
		movements: store.Movements(),
		events:    events,
		user:      user,
		now:       time.Now,
	}
}

// Record appends one movement row. A zero ts defaults to the current time;
// year and month are derived from the final timestamp. Appends are
// append-only, so there is no read-modify-write race here.
func (r *Recorder) Record(ctx context.Context, kind core.Kind, category string, amount core.Money, description string, currency core.Currency, ts time.Time) (core.Movement, error) {
	if ts.IsZero() {
		ts = r.now()
	}
	m := core.NewMovement(ts, r.user, kind, category, description, amount, currency)

	if err := r.movements.AppendRow(ctx, movementRow(m)); err != nil {
		return core.Movement{}, fmt.Errorf("append movement: %w", err)
	}

	slog.InfoContext(ctx, "Movement recorded",
		"kind", string(m.Kind),
		"category", m.Category,
		"amount", m.Amount.Decimal(),
		"currency", string(m.Currency),
		"year", m.Year,
		"month", m.Month)

	if r.events != nil {
		if err := r.events.PublishMovementRecorded(ctx, m); err != nil {
			slog.WarnContext(ctx, "Failed to publish movement event", "error", err)
		}
	}

	return m, nil
}

func movementRow(m core.Movement) []any {
	return []any{
		m.Timestamp.Format("2006-01-02 15:04:05"),
		m.User,
		string(m.Kind),
		m.Category,
		m.Description,
		m.Amount.Decimal(),
		strconv.Itoa(m.Year),
		strconv.Itoa(m.Month),
		string(m.Currency),
	}
}
