// Package config loads bot configuration from the environment or a yaml file.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/aettikang/auto-coin-sel/internal/domain"
)

// tradingTimezone the exchange's KRW markets trade on KST wall time.
const tradingTimezone = "Asia/Seoul"

// Config immutable process configuration, constructed once at startup and
// threaded into every component. No component reads ambient process state.
type Config struct {
	AccessKey string
	SecretKey string

	// DailyBudget total spend ceiling per day, fees included.
	DailyBudget decimal.Decimal
	// FeeRate exchange fee charged on top of the nominal spend.
	FeeRate decimal.Decimal
	// MinOrder exchange minimum order total in quote currency.
	MinOrder int64
	// Legs per-asset budget shares.
	Legs domain.Legs

	// Window authorized execution window.
	Window domain.Window
	// Location trading timezone used for all calendar decisions.
	Location *time.Location

	// Pause short-circuits the whole run when set.
	Pause bool
	// CheckExisting enables the pre-flight existence lookup per leg.
	CheckExisting bool
	// OrderDelay politeness delay between consecutive submissions.
	OrderDelay time.Duration

	APIBaseURL      string
	SlackWebhookURL string
	LogLevel        string
}

// rawConfig flat, parseable form shared by the env and yaml sources.
type rawConfig struct {
	AccessKey string `env:"UPBIT_ACCESS_KEY" yaml:"access_key"`
	SecretKey string `env:"UPBIT_SECRET_KEY" yaml:"secret_key"`

	DailyBudget string `env:"DAILY_BUDGET_KRW" envDefault:"40000" yaml:"daily_budget_krw"`
	FeeRate     string `env:"UPBIT_KRW_FEE" envDefault:"0.0005" yaml:"fee_rate"`
	MinOrder    int64  `env:"UPBIT_MIN_ORDER_KRW" envDefault:"5000" yaml:"min_order_krw"`
	Pairs       string `env:"DCA_PAIRS" envDefault:"KRW-BTC:0.5,KRW-ETH:0.5" yaml:"pairs"`

	TargetHour     int   `env:"TARGET_HOUR_KST" envDefault:"10" yaml:"target_hour_kst"`
	AllowedHours   []int `env:"ALLOWED_HOURS_KST" envSeparator:"," yaml:"allowed_hours_kst"`
	StrictTimeOnly bool  `env:"STRICT_TIME_ONLY" envDefault:"true" yaml:"strict_time_only"`
	WindowMinutes  int   `env:"WINDOW_MINUTES" envDefault:"15" yaml:"window_minutes"`

	Pause         bool          `env:"DCA_PAUSE" yaml:"pause"`
	CheckExisting bool          `env:"CHECK_EXISTING" envDefault:"true" yaml:"check_existing"`
	OrderDelay    time.Duration `env:"ORDER_DELAY" envDefault:"500ms" yaml:"order_delay"`

	APIBaseURL      string `env:"UPBIT_API_URL" envDefault:"https://api.upbit.com" yaml:"api_url"`
	SlackWebhookURL string `env:"SLACK_WEBHOOK_URL" yaml:"slack_webhook_url"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info" yaml:"log_level"`
}

// Get reads configuration from the environment, optionally overlaid by a
// yaml file passed via -config. A .env file in the working directory is
// loaded first when present.
func Get() (*Config, error) {
	path := flag.String("config", "", "path to yaml config overriding the environment")
	flag.Parse()

	_ = godotenv.Load()

	return load(*path)
}

func load(path string) (*Config, error) {
	var raw rawConfig
	if err := env.Parse(&raw); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config file %s", path)
		}
	}

	return raw.build()
}

func (r rawConfig) build() (*Config, error) {
	if r.AccessKey == "" || r.SecretKey == "" {
		return nil, errors.New("UPBIT_ACCESS_KEY and UPBIT_SECRET_KEY are required")
	}

	budget, err := decimal.NewFromString(r.DailyBudget)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid DAILY_BUDGET_KRW %q", r.DailyBudget)
	}
	if budget.LessThanOrEqual(decimal.Zero) {
		return nil, errors.Errorf("DAILY_BUDGET_KRW must be positive, got %s", budget.String())
	}

	feeRate, err := decimal.NewFromString(r.FeeRate)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid UPBIT_KRW_FEE %q", r.FeeRate)
	}
	if feeRate.IsNegative() {
		return nil, errors.Errorf("UPBIT_KRW_FEE must not be negative, got %s", feeRate.String())
	}

	if r.MinOrder <= 0 {
		return nil, errors.Errorf("UPBIT_MIN_ORDER_KRW must be positive, got %d", r.MinOrder)
	}

	legs, err := domain.ParseLegs(r.Pairs)
	if err != nil {
		return nil, errors.Wrap(err, "invalid DCA_PAIRS")
	}

	window, err := buildWindow(r)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(tradingTimezone)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load timezone %s", tradingTimezone)
	}

	return &Config{
		AccessKey:       r.AccessKey,
		SecretKey:       r.SecretKey,
		DailyBudget:     budget,
		FeeRate:         feeRate,
		MinOrder:        r.MinOrder,
		Legs:            legs,
		Window:          window,
		Location:        loc,
		Pause:           r.Pause,
		CheckExisting:   r.CheckExisting,
		OrderDelay:      r.OrderDelay,
		APIBaseURL:      r.APIBaseURL,
		SlackWebhookURL: r.SlackWebhookURL,
		LogLevel:        r.LogLevel,
	}, nil
}

// buildWindow selects the window variant: ALLOWED_HOURS_KST switches to the
// post-hour variant, otherwise the single target hour with a +/- window.
func buildWindow(r rawConfig) (domain.Window, error) {
	hours := r.AllowedHours
	mode := domain.WindowAfterHour
	if len(hours) == 0 {
		hours = []int{r.TargetHour}
		mode = domain.WindowAroundHour
	}

	for _, hour := range hours {
		if hour < 0 || hour > 23 {
			return domain.Window{}, fmt.Errorf("allowed hour out of range: %d", hour)
		}
	}
	if r.WindowMinutes <= 0 {
		return domain.Window{}, fmt.Errorf("WINDOW_MINUTES must be positive, got %d", r.WindowMinutes)
	}

	return domain.Window{
		Hours:   hours,
		Minutes: r.WindowMinutes,
		Strict:  r.StrictTimeOnly,
		Mode:    mode,
	}, nil
}
