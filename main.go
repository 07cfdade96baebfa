package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aettikang/auto-coin-sel/config"
	"github.com/aettikang/auto-coin-sel/internal/runner"
	"github.com/aettikang/auto-coin-sel/internal/services/gate"
	"github.com/aettikang/auto-coin-sel/internal/services/notifier"
	"github.com/aettikang/auto-coin-sel/internal/services/trader"
)

// runBudget wall-clock ceiling for a whole invocation; each invocation is
// independent and short-lived.
const runBudget = 2 * time.Minute

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 1
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	upbit := trader.NewUpbitTrader(logger, cfg.APIBaseURL, trader.Credentials{
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
	})

	r := runner.New(logger, cfg, gate.New(cfg.Window), upbit, notifier.New(cfg.SlackWebhookURL))

	ctx, cancel := context.WithTimeout(context.Background(), runBudget)
	defer cancel()

	summary := r.Run(ctx)

	// stdout carries exactly one machine-readable summary per non-paused run
	if !cfg.Pause {
		out, marshalErr := json.Marshal(summary)
		if marshalErr != nil {
			logger.Error("failed to marshal run summary", zap.Error(marshalErr))
			return 1
		}
		fmt.Println(string(out))
	}

	return summary.ExitCode()
}

// newLogger builds a production logger writing to stderr only; stdout is
// reserved for the run summary.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}
