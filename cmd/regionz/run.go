package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zoobzio/regionz"
	"github.com/zoobzio/regionz/engine"
	"github.com/zoobzio/regionz/internal/logging"
)

// activation gates the workload's tracer. Tests swap it for a fresh
// activation per run.
var activation = regionz.ProcessActivation

// active is the runtime of the workload in progress, closed by the exit
// handler main registers if the process exits mid-run.
var active atomic.Pointer[engine.Runtime]

func closeActive() {
	if rt := active.Swap(nil); rt != nil {
		rt.Close()
	}
}

type runOptions struct {
	envFile    string
	threads    int
	iterations int
	regions    int
	trace      bool
	verbose    bool
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the demo workload",
		Long: `Runs a parallel loop inside a region of interest. Each region executes a
static loop, a single construct and an explicit barrier.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWorkload(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.envFile, "env-file", "", "dotenv file loaded before tracing is activated")
	cmd.Flags().IntVarP(&opts.threads, "threads", "t", 4, "threads requested per parallel region")
	cmd.Flags().IntVarP(&opts.iterations, "iterations", "n", 1000, "loop iterations per region")
	cmd.Flags().IntVar(&opts.regions, "regions", 1, "number of parallel regions")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "set "+regionz.DefaultActivationVar+" for this run")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log tool diagnostics at debug level")

	return cmd
}

func runWorkload(cmd *cobra.Command, opts *runOptions) error {
	// Both must happen before the first record so the latched activation sees them.
	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil {
			return fmt.Errorf("loading %s: %w", opts.envFile, err)
		}
	}
	if opts.trace {
		if err := os.Setenv(regionz.DefaultActivationVar, "1"); err != nil {
			return err
		}
	}
	if opts.regions < 0 {
		return fmt.Errorf("regions must be >= 0, got %d", opts.regions)
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewWriter(cmd.ErrOrStderr(), level)

	tracer := regionz.New().
		WithActivation(activation()).
		WithOutput(cmd.OutOrStdout()).
		WithLogger(logger)

	rt := engine.New(
		engine.WithMaxThreads(opts.threads),
		engine.WithTool(tracer.StartTool),
		engine.WithLogger(logger),
	)
	active.Store(rt)
	defer func() {
		active.CompareAndSwap(rt, nil)
		rt.Close()
	}()

	ctx := context.Background()
	var checksum atomic.Uint64

	tracer.MarkROIStart(ctx)
	for r := 0; r < opts.regions; r++ {
		err := rt.Parallel(ctx, opts.threads, func(ctx context.Context) {
			if err := rt.For(ctx, opts.iterations, func(_ context.Context, i int) {
				checksum.Add(uint64(math.Sqrt(float64(i))))
			}); err != nil {
				logger.Error("loop failed", "err", err)
			}
			if err := rt.Single(ctx, func(ctx context.Context) {
				tracer.Annotate(ctx, fmt.Sprintf("region %d reduced", r))
			}); err != nil {
				logger.Error("single failed", "err", err)
			}
			if err := rt.Barrier(ctx); err != nil {
				logger.Error("barrier failed", "err", err)
			}
		})
		if err != nil {
			return fmt.Errorf("region %d: %w", r, err)
		}
	}
	tracer.MarkROIEnd(ctx)

	logger.Debug("workload finished", "checksum", checksum.Load(), "overflow", rt.Overflow())
	return nil
}
