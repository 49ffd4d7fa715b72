// Package worker holds the budget alert worker. It consumes recorded
// movements off the queue and messages the configured chat when a category's
// ARS spend for the month crosses its budget.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"finanzas/internal/amqp"
	"finanzas/internal/core"
	"finanzas/internal/ledger"
	"finanzas/internal/telegram"
)

type Alerter struct {
	aggregator *ledger.Aggregator
	registry   *ledger.Registry
	sender     telegram.Sender
	chatID     int64

	// One alert per category per month, reset on restart. A repeated alert
	// after a restart is acceptable; a missed one is not.
	mu       sync.Mutex
	notified map[string]struct{}
}

func NewAlerter(aggregator *ledger.Aggregator, registry *ledger.Registry, sender telegram.Sender, chatID int64) *Alerter {
	return &Alerter{
		aggregator: aggregator,
		registry:   registry,
		sender:     sender,
		chatID:     chatID,
		notified:   make(map[string]struct{}),
	}
}

// HandleMovement checks the budget for one recorded movement. Only ARS
// expenses can trip a budget; everything else acks immediately.
func (a *Alerter) HandleMovement(ctx context.Context, msg *amqp.MovementMessage) error {
	if core.Kind(strings.ToLower(msg.Kind)) != core.KindExpense {
		return nil
	}
	if strings.ToUpper(msg.Currency) != string(core.ARS) {
		return nil
	}
	return a.check(ctx, msg.Year, msg.Month, msg.Category)
}

// CheckAll re-evaluates every configured budget for the given month. Run
// periodically as a backstop for lost messages.
func (a *Alerter) CheckAll(ctx context.Context, year, month int) error {
	budgets, err := a.registry.Budgets(ctx)
	if err != nil {
		return fmt.Errorf("list budgets: %w", err)
	}
	for _, b := range budgets {
		if err := a.check(ctx, year, month, b.Category); err != nil {
			return err
		}
	}
	return nil
}

func (a *Alerter) check(ctx context.Context, year, month int, category string) error {
	budget, ok, err := a.registry.BudgetFor(ctx, category)
	if err != nil {
		return fmt.Errorf("budget for %q: %w", category, err)
	}
	if !ok {
		return nil
	}

	spent, err := a.aggregator.CategorySpend(ctx, year, month, category)
	if err != nil {
		return fmt.Errorf("category spend for %q: %w", category, err)
	}
	if spent.Cents <= budget.Cents {
		return nil
	}

	key := alertKey(year, month, category)
	if !a.markNotified(key) {
		return nil
	}

	text := fmt.Sprintf("⚠️ Presupuesto superado en '%s' (%d/%d).\nGastado: $%s de $%s.",
		strings.ToLower(strings.TrimSpace(category)), month, year, spent.Decimal(), budget.Decimal())
	if err := a.sender.SendMessage(ctx, a.chatID, text); err != nil {
		a.unmarkNotified(key)
		return fmt.Errorf("send budget alert: %w", err)
	}

	slog.InfoContext(ctx, "Budget alert sent",
		"category", category,
		"year", year,
		"month", month,
		"spent", spent.Decimal(),
		"budget", budget.Decimal())
	return nil
}

func alertKey(year, month int, category string) string {
	return fmt.Sprintf("%d-%d-%s", year, month, strings.ToLower(strings.TrimSpace(category)))
}

func (a *Alerter) markNotified(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, done := a.notified[key]; done {
		return false
	}
	a.notified[key] = struct{}{}
	return true
}

func (a *Alerter) unmarkNotified(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.notified, key)
}
