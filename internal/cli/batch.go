package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/moodbot/internal/logging"
	"github.com/ppiankov/moodbot/internal/pipeline"
	"github.com/ppiankov/moodbot/internal/worker"
)

var (
	batchConcurrency int
	batchUser        string
	batchTimeout     time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Classify multiple texts from a file in parallel",
	Long: `Batch classifies many texts concurrently:
- Read texts from the input file (one per line, blank lines skipped)
- Classify in parallel with a configurable worker count
- Append one event per text to the event log

Useful for backfilling the log from an exported chat history.

Example:
  moodbot batch messages.txt
  moodbot batch messages.txt --concurrency 8 --user backfill`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&batchUser, "user", "batch", "user id recorded with each event")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

// batchJob classifies and appends one line on a pool worker. It carries the
// batch deadline context; the pool context only signals shutdown.
type batchJob struct {
	ctx  context.Context
	pipe *pipeline.Pipeline
	user string
	text string
}

type batchResult struct {
	text string
	err  error
}

func (r *batchResult) Err() error { return r.err }

func (j *batchJob) Execute(poolCtx context.Context) worker.Result {
	if err := poolCtx.Err(); err != nil {
		return &batchResult{text: j.text, err: err}
	}
	_, err := j.pipe.Analyze(j.ctx, j.user, j.text)
	return &batchResult{text: j.text, err: err}
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.NewLogger(cfg.Logging.Env)
	pipe, err := pipeline.FromConfig(cfg, logger)
	if err != nil {
		return err
	}

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	pool := worker.NewPool(batchConcurrency)
	pool.Start()

	// Drain results while submitting. The pool's channels are bounded; on
	// inputs larger than a few times the worker count, a submit loop with no
	// reader would stall.
	failed := 0
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for res := range pool.Results() {
			if err := res.Err(); err != nil {
				failed++
				if verbose {
					fmt.Fprintf(os.Stderr, "✗ %v\n", err)
				}
			}
		}
	}()

	submitted := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		pool.Submit(&batchJob{ctx: ctx, pipe: pipe, user: batchUser, text: text})
		submitted++
	}
	if err := scanner.Err(); err != nil {
		pool.Shutdown()
		<-collected
		return fmt.Errorf("read input file: %w", err)
	}

	pool.Stop()
	<-collected

	fmt.Fprintf(os.Stderr, "Processed %d texts: %d ok, %d failed\n", submitted, submitted-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d texts failed", failed, submitted)
	}
	return nil
}
