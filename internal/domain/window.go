package domain

// WindowMode selects how allowed hours bound the execution window.
type WindowMode int

const (
	// WindowAroundHour admits timestamps within +/- Minutes of the top of the
	// single target hour.
	WindowAroundHour WindowMode = iota
	// WindowAfterHour admits timestamps up to Minutes past the top of any of
	// the allowed hours.
	WindowAfterHour
)

// Window authorized execution window in the trading timezone.
type Window struct {
	// Hours allowed local hours, a single target hour for WindowAroundHour.
	Hours []int
	// Minutes window length in minutes relative to the top of each hour.
	Minutes int
	// Strict disables the window check entirely when false; the weekday
	// check still applies. Used for manual or forced runs.
	Strict bool
	// Mode window variant.
	Mode WindowMode
}
