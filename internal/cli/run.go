package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/moodbot/internal/bot"
	"github.com/ppiankov/moodbot/internal/logging"
	"github.com/ppiankov/moodbot/internal/metrics"
	"github.com/ppiankov/moodbot/internal/pipeline"
)

var (
	runToken    string
	runProvider string
	runModel    string
	runWorkers  int
	runMetrics  string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the Telegram bot",
	Long: `Run starts the long-polling Telegram bot:
- Every text message is classified and answered with its mood
- /stats replies with aggregate usage statistics
- Each classification is durably appended to the CSV event log

Example:
  MOODBOT_BOT_TOKEN=... OPENAI_API_KEY=... moodbot run --provider openai
  moodbot run --provider hf --metrics-addr :9090`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runToken, "token", "", "Telegram bot token (overrides MOODBOT_BOT_TOKEN)")
	runCmd.Flags().StringVar(&runProvider, "provider", "", "classifier provider (openai, hf)")
	runCmd.Flags().StringVar(&runModel, "model", "", "classifier model name")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "number of concurrent message workers")
	runCmd.Flags().StringVar(&runMetrics, "metrics-addr", "", "serve Prometheus metrics on this address")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if runToken != "" {
		cfg.Bot.Token = runToken
	}
	if runProvider != "" {
		cfg.Classifier.Provider = runProvider
	}
	if runModel != "" {
		cfg.Classifier.Model = runModel
	}
	if runWorkers > 0 {
		cfg.Concurrency.Workers = runWorkers
	}
	if runMetrics != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = runMetrics
	}

	logger := logging.NewLogger(cfg.Logging.Env)

	pipe, err := pipeline.FromConfig(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	// Loading the model is the slow part for self-hosted endpoints; check
	// once at startup and keep running either way, like a chat bot should.
	checkCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	if pipe.Available(checkCtx) {
		logger.Info("classifier ready", "provider", cfg.Classifier.Provider)
	} else {
		logger.Warn("classifier not available, messages will be answered with a failure notice",
			"provider", cfg.Classifier.Provider)
	}
	cancel()

	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}
		go func() {
			logger.Info("metrics listening", "addr", cfg.Metrics.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	b, err := bot.New(cfg.Bot, cfg.Concurrency.Workers, pipe, logger)
	if err != nil {
		return err
	}

	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("bot stopped: %w", err)
	}
	return nil
}
