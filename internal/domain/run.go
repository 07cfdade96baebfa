package domain

import "time"

// dateTagLayout calendar date tag used in order identifiers.
const dateTagLayout = "20060102"

// RunContext fixes the current time for a whole invocation. Created once at
// startup and never mutated, so every leg of a run sees the same date tag.
type RunContext struct {
	// Now current timestamp in the trading timezone.
	Now time.Time
	// DateTag calendar date tag, e.g. "20260829".
	DateTag string
	// Weekday derived weekday in the trading timezone.
	Weekday time.Weekday
}

// NewRunContext converts now into the trading timezone and derives the tags.
func NewRunContext(now time.Time, loc *time.Location) RunContext {
	local := now.In(loc)
	return RunContext{
		Now:     local,
		DateTag: local.Format(dateTagLayout),
		Weekday: local.Weekday(),
	}
}
