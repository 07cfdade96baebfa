package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunSummary terminal artifact of one invocation. Marshaled to stdout as a
// single JSON object for downstream log scraping and alerting.
type RunSummary struct {
	// Timestamp invocation time in the trading timezone.
	Timestamp time.Time `json:"timestamp"`
	// Weekday derived weekday name.
	Weekday string `json:"weekday"`
	// Hours allowed execution hours.
	Hours []int `json:"hours"`
	// WindowMinutes window length in minutes.
	WindowMinutes int `json:"window_minutes"`
	// Strict whether window gating was active.
	Strict bool `json:"strict"`
	// Budget daily budget in quote currency.
	Budget decimal.Decimal `json:"budget"`
	// SkipReason set when the run short-circuited before any submission.
	SkipReason string `json:"skip_reason,omitempty"`
	// Orders per-leg outcomes in processing order.
	Orders []OrderOutcome `json:"orders"`
	// ErrorCount number of legs classified as failed.
	ErrorCount int `json:"error_count"`
}

// NewRunSummary seeds a summary with the run's fixed parameters.
func NewRunSummary(runCtx RunContext, window Window, budget decimal.Decimal) *RunSummary {
	return &RunSummary{
		Timestamp:     runCtx.Now,
		Weekday:       runCtx.Weekday.String(),
		Hours:         window.Hours,
		WindowMinutes: window.Minutes,
		Strict:        window.Strict,
		Budget:        budget,
		Orders:        make([]OrderOutcome, 0),
	}
}

// Add folds one leg's outcome into the summary.
func (s *RunSummary) Add(outcome OrderOutcome) {
	s.Orders = append(s.Orders, outcome)
	if outcome.Result.IsError() {
		s.ErrorCount++
	}
}

// ExitCode derives the process exit status: 0 when no leg failed, including
// the gated and paused no-op cases, 1 otherwise.
func (s *RunSummary) ExitCode() int {
	if s.ErrorCount > 0 {
		return 1
	}
	return 0
}
