// Package domain defines core data structures used throughout the DCA bot.
package domain

import (
	"fmt"
	"strings"
)

// Pair cryptocurrency trading pair on a quote-currency market.
type Pair struct {
	// Quote currency symbol the order spends, e.g. KRW.
	Quote string
	// Base currency symbol being bought, e.g. BTC.
	Base string
}

// Market returns the exchange market code, e.g. "KRW-BTC".
func (p Pair) Market() string {
	return fmt.Sprintf("%s-%s", p.Quote, p.Base)
}

// String returns the string representation.
func (p Pair) String() string {
	return p.Market()
}

// PairFromString parses a market code of the form "KRW-BTC".
func PairFromString(s string) (Pair, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Pair{}, fmt.Errorf("invalid market code %q, expected form KRW-BTC", s)
	}
	return Pair{Quote: strings.ToUpper(parts[0]), Base: strings.ToUpper(parts[1])}, nil
}
