package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPairFromString(t *testing.T) {
	pair, err := PairFromString("KRW-BTC")
	require.NoError(t, err)
	require.Equal(t, "KRW", pair.Quote)
	require.Equal(t, "BTC", pair.Base)
	require.Equal(t, "KRW-BTC", pair.Market())

	pair, err = PairFromString(" krw-eth ")
	require.NoError(t, err)
	require.Equal(t, "KRW-ETH", pair.Market())

	for _, bad := range []string{"", "KRWBTC", "KRW-", "-BTC", "KRW-BTC-X"} {
		_, err := PairFromString(bad)
		require.Error(t, err, "market code %q must be rejected", bad)
	}
}

func TestParseLegs(t *testing.T) {
	legs, err := ParseLegs("KRW-BTC:0.5, KRW-ETH:0.5")
	require.NoError(t, err)
	require.Len(t, legs, 2)
	require.True(t, legs[0].Weight.Equal(decimal.NewFromFloat(0.5)))

	legs, err = ParseLegs("KRW-BTC:1.0")
	require.NoError(t, err)
	require.Len(t, legs, 1)
}

func TestParseLegsRejectsBadWeights(t *testing.T) {
	cases := []string{
		"",
		"KRW-BTC",
		"KRW-BTC:0.5",               // sum != 1
		"KRW-BTC:0.7,KRW-ETH:0.7",   // sum != 1
		"KRW-BTC:0,KRW-ETH:1.0",     // zero weight
		"KRW-BTC:1.5,KRW-ETH:-0.5",  // out of range
		"KRW-BTC:abc,KRW-ETH:0.5",   // not a number
	}

	for _, s := range cases {
		_, err := ParseLegs(s)
		require.Error(t, err, "legs %q must be rejected", s)
	}
}

func TestOrderResultJSON(t *testing.T) {
	out, err := json.Marshal(OrderOutcome{
		Market:     "KRW-BTC",
		Amount:     19990,
		Identifier: "dca-20260824-krw-btc",
		Result:     ResultDuplicate,
	})
	require.NoError(t, err)
	require.Contains(t, string(out), `"result":"duplicate"`)
}

func TestNewRunContext(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	// 01:30 UTC is 10:30 KST the same day
	now := time.Date(2026, time.August, 24, 1, 30, 0, 0, time.UTC)
	runCtx := NewRunContext(now, seoul)

	require.Equal(t, "20260824", runCtx.DateTag)
	require.Equal(t, time.Monday, runCtx.Weekday)
	require.Equal(t, 10, runCtx.Now.Hour())
}

func TestRunSummaryErrorCount(t *testing.T) {
	runCtx := NewRunContext(time.Date(2026, time.August, 24, 10, 0, 0, 0, time.UTC), time.UTC)
	summary := NewRunSummary(runCtx, Window{Hours: []int{10}, Minutes: 15, Strict: true}, decimal.NewFromInt(40000))

	summary.Add(OrderOutcome{Result: ResultAccepted})
	summary.Add(OrderOutcome{Result: ResultDuplicate})
	require.Equal(t, 0, summary.ErrorCount)
	require.Equal(t, 0, summary.ExitCode())

	summary.Add(OrderOutcome{Result: ResultFailed, Detail: "status 500"})
	require.Equal(t, 1, summary.ErrorCount)
	require.Equal(t, 1, summary.ExitCode())
}
