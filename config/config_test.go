package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/aettikang/auto-coin-sel/internal/domain"
)

func setCredentials(t *testing.T) {
	t.Setenv("UPBIT_ACCESS_KEY", "test-access")
	t.Setenv("UPBIT_SECRET_KEY", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setCredentials(t)

	cfg, err := load("")
	require.NoError(t, err)

	require.True(t, cfg.DailyBudget.Equal(decimal.NewFromInt(40000)))
	require.True(t, cfg.FeeRate.Equal(decimal.NewFromFloat(0.0005)))
	require.Equal(t, int64(5000), cfg.MinOrder)
	require.Equal(t, 500*time.Millisecond, cfg.OrderDelay)
	require.True(t, cfg.CheckExisting)
	require.False(t, cfg.Pause)

	require.Len(t, cfg.Legs, 2)
	require.Equal(t, "KRW-BTC", cfg.Legs[0].Pair.Market())
	require.Equal(t, "KRW-ETH", cfg.Legs[1].Pair.Market())

	require.Equal(t, []int{10}, cfg.Window.Hours)
	require.Equal(t, 15, cfg.Window.Minutes)
	require.True(t, cfg.Window.Strict)
	require.Equal(t, domain.WindowAroundHour, cfg.Window.Mode)
	require.Equal(t, "Asia/Seoul", cfg.Location.String())
}

func TestLoadMissingCredentialsIsFatal(t *testing.T) {
	t.Setenv("UPBIT_ACCESS_KEY", "")
	t.Setenv("UPBIT_SECRET_KEY", "")

	_, err := load("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "UPBIT_ACCESS_KEY")
}

func TestLoadAllowedHoursSwitchesVariant(t *testing.T) {
	setCredentials(t)
	t.Setenv("ALLOWED_HOURS_KST", "9,13,21")
	t.Setenv("WINDOW_MINUTES", "10")

	cfg, err := load("")
	require.NoError(t, err)

	require.Equal(t, []int{9, 13, 21}, cfg.Window.Hours)
	require.Equal(t, domain.WindowAfterHour, cfg.Window.Mode)
}

func TestLoadPauseToggle(t *testing.T) {
	setCredentials(t)
	t.Setenv("DCA_PAUSE", "1")

	cfg, err := load("")
	require.NoError(t, err)
	require.True(t, cfg.Pause)
}

func TestLoadRejectsBadValues(t *testing.T) {
	setCredentials(t)

	cases := map[string]string{
		"DAILY_BUDGET_KRW":    "-1",
		"UPBIT_KRW_FEE":       "-0.1",
		"UPBIT_MIN_ORDER_KRW": "0",
		"TARGET_HOUR_KST":     "24",
		"WINDOW_MINUTES":      "0",
		"DCA_PAIRS":           "KRW-BTC:0.9,KRW-ETH:0.4",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := load("")
			require.Error(t, err, "value %q for %s must be rejected", value, key)
		})
	}
}

func TestLoadYamlOverridesEnvironment(t *testing.T) {
	setCredentials(t)
	t.Setenv("DAILY_BUDGET_KRW", "40000")

	path := filepath.Join(t.TempDir(), "dca.yaml")
	content := "daily_budget_krw: \"60000\"\npairs: \"KRW-BTC:1.0\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := load(path)
	require.NoError(t, err)

	require.True(t, cfg.DailyBudget.Equal(decimal.NewFromInt(60000)))
	require.Len(t, cfg.Legs, 1)
}
