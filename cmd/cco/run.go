package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/b97tsk/cco/internal/demo"
	"github.com/b97tsk/cco/internal/trace"
)

var runCmd = &cobra.Command{
	Use:       "run [flags] scenario",
	Short:     "Run a demo scenario",
	Long:      "Run runs one of the demo scenarios: " + strings.Join(demo.Names(), ", ") + ".",
	Args:      cobra.ExactArgs(1),
	ValidArgs: demo.Names(),
	RunE:      runScenario,
}

func init() {
	runCmd.Flags().String("trace", "", "write the recorded steps to this file")
	runCmd.Flags().Int("items", 0, "items per producer, or values per generator")
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("trace") {
		cfg.Trace, _ = cmd.Flags().GetString("trace")
	}
	if cmd.Flags().Changed("items") {
		if cfg.Items, _ = cmd.Flags().GetInt("items"); cfg.Items < 0 {
			return fmt.Errorf("--items must not be negative, got %d", cfg.Items)
		}
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	opts := demo.Options{
		Depth:     cfg.Depth,
		Items:     cfg.Items,
		Producers: cfg.Producers,
		Tick:      cfg.Tick,
		Logger:    logger,
	}
	var rec trace.Recorder
	if cfg.Trace != "" {
		opts.Observe = rec.Observer
	}

	name := args[0]
	logger.Info("running scenario", zap.String("name", name), zap.Int("depth", cfg.Depth))
	err = demo.Run(cmd.Context(), name, cmd.OutOrStdout(), opts)

	if cfg.Trace != "" {
		events := rec.Events()
		if werr := trace.WriteFile(cfg.Trace, events); werr != nil {
			return fmt.Errorf("writing trace: %w", werr)
		}
		logger.Info("trace written", zap.String("file", cfg.Trace), zap.Int("events", len(events)))
	}
	return err
}
