package main

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/b97tsk/cco/internal/demo"
)

var benchCmd = &cobra.Command{
	Use:   "bench [flags]",
	Short: "Measure runtime step throughput",
	Long:  `Bench runs task trees on several executors at once, one goroutine each, and reports how many steps per second they take.`,
	Args:  cobra.NoArgs,
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().Int("trees", 1000, "task trees spawned per executor")
	benchCmd.Flags().Int("rounds", 10, "times each worker runs its executor")
}

func runBench(cmd *cobra.Command, _ []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	trees, _ := cmd.Flags().GetInt("trees")
	rounds, _ := cmd.Flags().GetInt("rounds")
	if trees < 1 || rounds < 1 {
		return fmt.Errorf("--trees and --rounds must be positive")
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	opts := demo.Options{Depth: cfg.Depth, Items: cfg.Items, Logger: logger}

	var steps atomic.Int64
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(cfg.Workers)

	start := time.Now()
	for w := range cfg.Workers * rounds {
		g.Go(func() error {
			n, err := demo.Bench(ctx, trees, opts)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w%cfg.Workers, err)
			}
			steps.Add(int64(n))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	total := steps.Load()
	logger.Debug("bench finished", zap.Int64("steps", total), zap.Duration("elapsed", elapsed))
	fmt.Fprintf(cmd.OutOrStdout(), "%d steps in %v (%.0f steps/s, %d workers, depth %d)\n",
		total, elapsed.Round(time.Millisecond), float64(total)/elapsed.Seconds(), cfg.Workers, cfg.Depth)
	return nil
}
