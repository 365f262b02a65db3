package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/moodbot/internal/model"
	"github.com/ppiankov/moodbot/internal/stats"
	"github.com/ppiankov/moodbot/internal/store"
)

var statsTimeout time.Duration

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print aggregate statistics over the event log",
	Long: `Stats rescans the full event log and prints:
- total number of classified messages
- the percentage of each observed sentiment
- the average message length

Example:
  moodbot stats`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().DurationVar(&statsTimeout, "timeout", 30*time.Second, "overall timeout")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), statsTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st := store.NewCSVStore(cfg.Storage.Path())
	report, err := stats.New(st).Compute(ctx)
	if errors.Is(err, stats.ErrNoData) {
		fmt.Println("No statistics yet.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("compute stats: %w", err)
	}

	fmt.Printf("Event log:        %s\n", cfg.Storage.Path())
	fmt.Printf("Total messages:   %d\n", report.Total)
	fmt.Printf("Average length:   %.0f characters\n", report.AvgTextLength)
	fmt.Println("By mood:")
	for _, s := range model.Sentiments {
		if pct, ok := report.Distribution[s]; ok {
			fmt.Printf("  %-9s %.1f%%\n", s, pct)
		}
	}

	return nil
}
