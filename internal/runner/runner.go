// Package runner composes one bot invocation end to end: admission gate,
// per-leg allocation, submission, classification and the run summary.
package runner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aettikang/auto-coin-sel/config"
	"github.com/aettikang/auto-coin-sel/internal/domain"
	"github.com/aettikang/auto-coin-sel/internal/services/budget"
	"github.com/aettikang/auto-coin-sel/internal/services/gate"
	"github.com/aettikang/auto-coin-sel/internal/services/idem"
)

// SkipPaused skip reason recorded when the pause toggle is set.
const SkipPaused = "paused"

type trader interface {
	// Submit places a market buy; the outcome is always populated.
	Submit(ctx context.Context, intent domain.OrderIntent) domain.OrderOutcome
	// Exists reports whether an order with the identifier already exists.
	Exists(ctx context.Context, identifier string) (bool, error)
}

type notifier interface {
	Notify(ctx context.Context, text string) error
}

type guard interface {
	Check(now time.Time) gate.Admission
}

// Runner executes one invocation. Legs are processed strictly sequentially;
// the summary is the only state accumulated across legs.
type Runner struct {
	cfg      *config.Config
	guard    guard
	trader   trader
	notifier notifier
	l        *zap.Logger

	// injected for tests
	now   func() time.Time
	sleep func(time.Duration)
}

// New returns a runner wired with the real clock.
func New(l *zap.Logger, cfg *config.Config, guard guard, trader trader, notifier notifier) *Runner {
	return &Runner{
		cfg:      cfg,
		guard:    guard,
		trader:   trader,
		notifier: notifier,
		l:        l,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// Run executes the invocation and returns its summary. Gating and pause are
// normal no-ops, not errors; per-leg failures are isolated and only raise the
// summary's error count.
func (r *Runner) Run(ctx context.Context) *domain.RunSummary {
	runCtx := domain.NewRunContext(r.now(), r.cfg.Location)
	summary := domain.NewRunSummary(runCtx, r.cfg.Window, r.cfg.DailyBudget)

	if r.cfg.Pause {
		summary.SkipReason = SkipPaused
		r.l.Info("run paused via configuration, nothing to do")
		return summary
	}

	if adm := r.guard.Check(runCtx.Now); !adm.OK {
		summary.SkipReason = adm.Reason
		r.l.Info("invocation not eligible, skipping run",
			zap.String("reason", adm.Reason),
			zap.String("weekday", runCtx.Weekday.String()),
			zap.Time("now", runCtx.Now))
		return summary
	}

	for i, leg := range r.cfg.Legs {
		if i > 0 && r.cfg.OrderDelay > 0 {
			// politeness toward the exchange rate limiter, not correctness
			r.sleep(r.cfg.OrderDelay)
		}
		summary.Add(r.executeLeg(ctx, runCtx, leg))
	}

	r.l.Info("run finished",
		zap.Int("orders", len(summary.Orders)),
		zap.Int("errors", summary.ErrorCount))

	return summary
}

func (r *Runner) executeLeg(ctx context.Context, runCtx domain.RunContext, leg domain.Leg) domain.OrderOutcome {
	market := leg.Pair.Market()
	identifier := idem.Key(runCtx.DateTag, market)

	if r.cfg.CheckExisting {
		found, err := r.trader.Exists(ctx, identifier)
		switch {
		case err != nil:
			// fail open: the exchange rejects identifier reuse anyway
			r.l.Warn("order lookup failed, attempting submission",
				zap.Error(err),
				zap.String("identifier", identifier))
		case found:
			r.l.Info("order already placed today, skipping submission",
				zap.String("market", market),
				zap.String("identifier", identifier))
			return domain.OrderOutcome{
				Market:     market,
				Identifier: identifier,
				Result:     domain.ResultDuplicate,
				Detail:     "order already exists",
			}
		}
	}

	amount := budget.ForLeg(r.cfg.DailyBudget, leg.Weight, r.cfg.FeeRate, r.cfg.MinOrder)
	intent := domain.OrderIntent{Pair: leg.Pair, Amount: amount, Identifier: identifier}

	r.l.Info("submitting market buy",
		zap.String("market", market),
		zap.Int64("amount", amount),
		zap.String("identifier", identifier))

	outcome := r.trader.Submit(ctx, intent)

	switch outcome.Result {
	case domain.ResultAccepted:
		r.l.Info("order accepted",
			zap.String("market", market),
			zap.Int64("amount", amount),
			zap.String("order_uuid", outcome.Detail))
		r.notify(ctx, outcome)
	case domain.ResultDuplicate:
		r.l.Info("order already placed today",
			zap.String("market", market),
			zap.String("identifier", identifier))
		r.notify(ctx, outcome)
	case domain.ResultFailed:
		r.l.Error("order submission failed",
			zap.String("market", market),
			zap.String("detail", outcome.Detail))
	}

	return outcome
}

// notify delivers a human-readable report; failures are swallowed.
func (r *Runner) notify(ctx context.Context, outcome domain.OrderOutcome) {
	text := fmt.Sprintf("DCA %s: %d KRW market buy %s (identifier %s)",
		outcome.Market, outcome.Amount, outcome.Result.String(), outcome.Identifier)

	if err := r.notifier.Notify(ctx, text); err != nil {
		r.l.Warn("notification failed", zap.Error(err))
	}
}
