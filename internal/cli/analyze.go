package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/moodbot/internal/logging"
	"github.com/ppiankov/moodbot/internal/pipeline"
)

var (
	analyzeUser     string
	analyzeProvider string
	analyzeModel    string
	analyzeTimeout  time.Duration
	analyzeNoStore  bool
	analyzeNoCache  bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <text>",
	Short: "Classify one text from the command line",
	Long: `Analyze classifies a single text and prints the canonical verdict with
its probability distribution. By default the result is appended to the event
log exactly like a bot message.

Example:
  moodbot analyze "what a wonderful day"
  moodbot analyze --provider openai --no-store "quick sanity check"`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeUser, "user", "cli", "user id recorded with the event")
	analyzeCmd.Flags().StringVar(&analyzeProvider, "provider", "", "classifier provider (openai, hf)")
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "classifier model name")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 30*time.Second, "overall timeout")
	analyzeCmd.Flags().BoolVar(&analyzeNoStore, "no-store", false, "classify only, do not append to the event log")
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "disable the classifier result cache")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if analyzeProvider != "" {
		cfg.Classifier.Provider = analyzeProvider
		cfg.Classifier.APIKey = "" // re-resolve for the overridden provider
	}
	if analyzeModel != "" {
		cfg.Classifier.Model = analyzeModel
	}
	if analyzeNoCache {
		cfg.Cache.Enabled = false
	}
	if cfg.Classifier.APIKey == "" {
		switch cfg.Classifier.Provider {
		case "openai":
			cfg.Classifier.APIKey = os.Getenv("OPENAI_API_KEY")
		case "hf", "huggingface":
			cfg.Classifier.APIKey = os.Getenv("HF_API_TOKEN")
		}
	}

	logger := logging.NewLogger(cfg.Logging.Env)
	pipe, err := pipeline.FromConfig(cfg, logger)
	if err != nil {
		return err
	}

	if analyzeNoStore {
		verdict, dist, err := pipe.Classify(ctx, text)
		if err != nil {
			return fmt.Errorf("analyze failed: %w", err)
		}
		printVerdict(string(verdict), dist.Positive, dist.Negative, dist.Neutral)
		return nil
	}

	ev, err := pipe.Analyze(ctx, analyzeUser, text)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	printVerdict(string(ev.Sentiment), ev.Probs.Positive, ev.Probs.Negative, ev.Probs.Neutral)
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Appended event for user %s (%s)\n", ev.UserID, cfg.Storage.Path())
	}
	return nil
}

func printVerdict(verdict string, pos, neg, neu float64) {
	fmt.Printf("Mood: %s\n", verdict)
	fmt.Printf("  positive: %.1f%%\n", pos)
	fmt.Printf("  negative: %.1f%%\n", neg)
	fmt.Printf("  neutral:  %.1f%%\n", neu)
}
