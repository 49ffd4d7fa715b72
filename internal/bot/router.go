package bot

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"finanzas/internal/core"
	"finanzas/internal/ledger"
)

// Router dispatches one inbound message to exactly one handler and turns the
// outcome into at most one reply. Every failure (parse error, store I/O,
// even a panic) is absorbed here and mapped to a fixed user-facing message;
// nothing propagates to the transport, and one failing command never affects
// the next.
type Router struct {
	recorder    *ledger.Recorder
	aggregator  *ledger.Aggregator
	registry    *ledger.Registry
	scheduler   *ledger.Scheduler
	defaultUser string
	now         func() time.Time
}

func NewRouter(recorder *ledger.Recorder, aggregator *ledger.Aggregator, registry *ledger.Registry, scheduler *ledger.Scheduler, defaultUser string) *Router {
	return &Router{
		recorder:    recorder,
		aggregator:  aggregator,
		registry:    registry,
		scheduler:   scheduler,
		defaultUser: defaultUser,
		now:         time.Now,
	}
}

// Handle processes one message. ok=false means no reply is due (empty text).
func (r *Router) Handle(ctx context.Context, in Inbound) (reply string, ok bool) {
	cmd, ok := ParseCommand(in.Text)
	if !ok {
		return "", false
	}
	return r.dispatch(ctx, cmd, in), true
}

func (r *Router) dispatch(ctx context.Context, cmd Command, in Inbound) (reply string) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.ErrorContext(ctx, "Handler panicked", "command", cmd.Name, "panic", rec)
			reply = ReplyFault
		}
	}()

	switch cmd.Name {
	case "/start", "/help":
		return HelpReply(r.senderName(in))
	case "/gasto":
		return r.movement(ctx, cmd.Args, core.KindExpense, core.ARS)
	case "/gasto_usd":
		return r.movement(ctx, cmd.Args, core.KindExpense, core.USD)
	case "/ingreso":
		return r.movement(ctx, cmd.Args, core.KindIncome, core.ARS)
	case "/ingreso_usd":
		return r.movement(ctx, cmd.Args, core.KindIncome, core.USD)
	case "/cuotas":
		return r.installments(ctx, cmd.Args)
	case "/resumen":
		return r.summary(ctx)
	case "/saldo":
		return r.balance(ctx)
	case "/presupuesto":
		return r.budget(ctx, cmd.Args)
	case "/objetivo":
		return r.goal(ctx, cmd.Args)
	default:
		return ReplyUnknown
	}
}

func (r *Router) movement(ctx context.Context, raw []string, kind core.Kind, currency core.Currency) string {
	args, err := ParseMovementArgs(raw)
	switch {
	case errors.Is(err, core.ErrMissingArguments):
		return MovementUsageReply(kind)
	case errors.Is(err, core.ErrInvalidAmount):
		return MovementInvalidAmountReply(kind)
	case err != nil:
		slog.ErrorContext(ctx, "Unexpected movement parse error", "error", err)
		return ReplyFault
	}

	if _, err := r.recorder.Record(ctx, kind, args.Category, args.Amount, args.Description, currency, time.Time{}); err != nil {
		slog.ErrorContext(ctx, "Failed to record movement", "kind", string(kind), "error", err)
		return ReplyFault
	}
	return MovementReply(kind, currency, args.Amount, args.Category)
}

func (r *Router) installments(ctx context.Context, raw []string) string {
	args, err := ParseInstallmentArgs(raw)
	switch {
	case errors.Is(err, core.ErrMissingArguments):
		return ReplyInstallmentsUsage
	case errors.Is(err, core.ErrInvalidAmount):
		return ReplyInvalidAmount
	case errors.Is(err, core.ErrInvalidInstallments):
		return ReplyInvalidCount
	case err != nil:
		slog.ErrorContext(ctx, "Unexpected installment parse error", "error", err)
		return ReplyFault
	}

	per, err := r.scheduler.Schedule(ctx, args.Category, args.Total, args.Description, args.Count, r.now())
	if err != nil {
		slog.ErrorContext(ctx, "Failed to record installment schedule",
			"category", args.Category, "count", args.Count, "error", err)
		return ReplyFault
	}
	return InstallmentsReply(args.Total, args.Count, per)
}

func (r *Router) summary(ctx context.Context) string {
	now := r.now()
	sum, err := r.aggregator.Summarize(ctx, now.Year(), int(now.Month()))
	if err != nil {
		slog.ErrorContext(ctx, "Failed to summarize month", "error", err)
		return ReplyFault
	}
	return SummaryReply(now.Year(), int(now.Month()), sum)
}

func (r *Router) balance(ctx context.Context) string {
	now := r.now()
	sum, err := r.aggregator.Summarize(ctx, now.Year(), int(now.Month()))
	if err != nil {
		slog.ErrorContext(ctx, "Failed to summarize month", "error", err)
		return ReplyFault
	}
	return BalanceReply(sum)
}

func (r *Router) budget(ctx context.Context, args []string) string {
	if len(args) < 2 {
		return ReplyBudgetUsage
	}
	amount, err := core.ParseAmount(args[1])
	if err != nil {
		return ReplyInvalidAmount
	}
	if err := r.registry.SetBudget(ctx, args[0], amount); err != nil {
		slog.ErrorContext(ctx, "Failed to set budget", "category", args[0], "error", err)
		return ReplyFault
	}
	return BudgetReply(args[0], amount)
}

func (r *Router) goal(ctx context.Context, args []string) string {
	if len(args) < 2 {
		return ReplyGoalUsage
	}
	amount, err := core.ParseAmount(args[1])
	if err != nil {
		return ReplyInvalidAmount
	}
	if err := r.registry.SetGoal(ctx, args[0], amount); err != nil {
		slog.ErrorContext(ctx, "Failed to set goal", "name", args[0], "error", err)
		return ReplyFault
	}
	return GoalReply(args[0], amount)
}

func (r *Router) senderName(in Inbound) string {
	if in.Sender != "" {
		return in.Sender
	}
	return r.defaultUser
}
