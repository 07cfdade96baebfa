package domain

// OrderResult classified outcome of one order submission.
type OrderResult int

const (
	// ResultAccepted the exchange accepted the order.
	ResultAccepted OrderResult = iota
	// ResultDuplicate an order with the same identifier already exists for
	// this calendar day; treated as a successful no-op.
	ResultDuplicate
	// ResultFailed the submission failed and counts toward the run's errors.
	ResultFailed
)

// result string constants to avoid magic strings
const (
	resultStringAccepted  = "accepted"
	resultStringDuplicate = "duplicate"
	resultStringFailed    = "failed"
)

// String returns the string representation of the result.
func (r OrderResult) String() string {
	switch r {
	case ResultAccepted:
		return resultStringAccepted
	case ResultDuplicate:
		return resultStringDuplicate
	case ResultFailed:
		return resultStringFailed
	default:
		return "unknown"
	}
}

// MarshalJSON renders the result as its string form in run summaries.
func (r OrderResult) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// IsError reports whether the result counts toward the run's error count.
func (r OrderResult) IsError() bool {
	return r == ResultFailed
}

// OrderIntent a fully computed order ready for submission. Consumed
// immediately by the gateway and never persisted locally; the exchange-side
// uniqueness constraint on Identifier is the durable idempotency store.
type OrderIntent struct {
	// Pair market to buy on.
	Pair Pair
	// Amount quote currency to spend, whole currency units.
	Amount int64
	// Identifier deterministic per-day per-asset idempotency key.
	Identifier string
}

// OrderOutcome classified result of one leg's submission.
type OrderOutcome struct {
	// Market exchange market code.
	Market string `json:"market"`
	// Amount quote currency the intent would spend.
	Amount int64 `json:"amount"`
	// Identifier idempotency key carried by the request.
	Identifier string `json:"identifier"`
	// Result classification of the gateway response.
	Result OrderResult `json:"result"`
	// Detail raw response detail, error text for failures.
	Detail string `json:"detail,omitempty"`
}
