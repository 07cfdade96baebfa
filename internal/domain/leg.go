package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// weightSumTolerance absorbs representation noise in configured weights.
var weightSumTolerance = decimal.NewFromFloat(0.0001)

// Leg one asset's share of the daily budget.
type Leg struct {
	// Pair market to buy on.
	Pair Pair
	// Weight fraction of the daily budget spent on this leg, 0 < w <= 1.
	Weight decimal.Decimal
}

// Legs ordered set of budget legs processed sequentially per run.
type Legs []Leg

// Validate checks individual weights and that weights sum to 1.
func (l Legs) Validate() error {
	if len(l) == 0 {
		return fmt.Errorf("at least one leg is required")
	}

	sum := decimal.Zero
	for _, leg := range l {
		if leg.Weight.LessThanOrEqual(decimal.Zero) || leg.Weight.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("leg %s weight must be in (0, 1], got %s", leg.Pair.Market(), leg.Weight.String())
		}
		sum = sum.Add(leg.Weight)
	}

	if sum.Sub(decimal.NewFromInt(1)).Abs().GreaterThan(weightSumTolerance) {
		return fmt.Errorf("leg weights must sum to 1, got %s", sum.String())
	}

	return nil
}

// ParseLegs parses a leg list of the form "KRW-BTC:0.5,KRW-ETH:0.5".
func ParseLegs(s string) (Legs, error) {
	var legs Legs
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		market, weightStr, found := strings.Cut(item, ":")
		if !found {
			return nil, fmt.Errorf("invalid leg %q, expected form KRW-BTC:0.5", item)
		}

		pair, err := PairFromString(market)
		if err != nil {
			return nil, err
		}

		weight, err := decimal.NewFromString(strings.TrimSpace(weightStr))
		if err != nil {
			return nil, fmt.Errorf("invalid weight in leg %q: %w", item, err)
		}

		legs = append(legs, Leg{Pair: pair, Weight: weight})
	}

	if err := legs.Validate(); err != nil {
		return nil, err
	}

	return legs, nil
}
