// Command cco runs the demo scenarios of the cco package and inspects the
// traces they record.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/b97tsk/cco/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "cco",
	Short:         "Stackless coroutine demos",
	Long:          `cco runs scenarios built on stackless coroutines, records their steps and benchmarks runtimes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "TOML settings file")
	rootCmd.PersistentFlags().String("log-level", "", "minimum log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().Int("depth", 0, "runtime stack depth")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(benchCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError reports a failed command. Errors carry their own package
// prefix, so none is added.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, err)
}

// settings loads the config file, if any, and applies the persistent flags
// the user set over it.
func settings(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Root().PersistentFlags()

	cfg := config.Default()
	if name, _ := flags.GetString("config"); name != "" {
		var err error
		if cfg, err = config.Load(name); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("log-level") {
		s, _ := flags.GetString("log-level")
		level, err := zapcore.ParseLevel(s)
		if err != nil {
			return cfg, fmt.Errorf("--log-level: %w", err)
		}
		cfg.LogLevel = level
	}
	if flags.Changed("depth") {
		cfg.Depth, _ = flags.GetInt("depth")
	}
	return cfg, cfg.Validate()
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.DisableStacktrace = true
	return zc.Build()
}
