// Package gate decides whether an invocation falls inside the authorized
// execution window.
package gate

import (
	"time"

	"github.com/aettikang/auto-coin-sel/internal/domain"
)

// skip reason constants surfaced in run summaries
const (
	ReasonWeekend       = "weekend"
	ReasonOutsideWindow = "outside window"
)

// Admission result of the eligibility check.
type Admission struct {
	// OK whether the invocation may proceed.
	OK bool
	// Reason skip reason when not eligible.
	Reason string
}

// Guard evaluates weekday and time-window rules against an injected
// timestamp. It holds no clock of its own and performs no side effects.
type Guard struct {
	window domain.Window
}

// New returns a guard for the given window.
func New(window domain.Window) *Guard {
	return &Guard{window: window}
}

// Check evaluates now against the window. Weekends are always rejected; the
// window check is skipped when strict gating is disabled.
func (g *Guard) Check(now time.Time) Admission {
	if wd := now.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return Admission{OK: false, Reason: ReasonWeekend}
	}

	if !g.window.Strict {
		return Admission{OK: true}
	}

	if g.inWindow(now) {
		return Admission{OK: true}
	}

	return Admission{OK: false, Reason: ReasonOutsideWindow}
}

func (g *Guard) inWindow(now time.Time) bool {
	width := time.Duration(g.window.Minutes) * time.Minute

	switch g.window.Mode {
	case domain.WindowAroundHour:
		for _, hour := range g.window.Hours {
			anchor := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
			diff := now.Sub(anchor)
			if diff < 0 {
				diff = -diff
			}
			if diff <= width {
				return true
			}
		}
	case domain.WindowAfterHour:
		for _, hour := range g.window.Hours {
			if now.Hour() == hour && now.Minute() <= g.window.Minutes {
				return true
			}
		}
	}

	return false
}
