// Package idem derives deterministic per-day order identifiers.
package idem

import (
	"fmt"
	"strings"
)

const keyPrefix = "dca"

// Key returns the idempotency identifier for one market on one calendar day,
// e.g. "dca-20260829-krw-btc". The key is a pure function of its inputs and
// never encodes the hour: deployments with several allowed hours still
// produce at most one order per day per market.
func Key(dateTag, market string) string {
	return fmt.Sprintf("%s-%s-%s", keyPrefix, dateTag, strings.ToLower(market))
}
