package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/b97tsk/cco"
	"github.com/b97tsk/cco/internal/trace"
)

var traceCmd = &cobra.Command{
	Use:   "trace [flags] file",
	Short: "Print a recorded trace",
	Long:  `Trace prints the steps stored in a trace file written by "cco run --trace".`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTrace,
}

func init() {
	traceCmd.Flags().String("runtime", "", "only print steps of this runtime")
	traceCmd.Flags().Bool("no-color", false, "disable colored output")
}

func runTrace(cmd *cobra.Command, args []string) error {
	events, err := trace.ReadFile(args[0])
	if err != nil {
		return err
	}
	only, _ := cmd.Flags().GetString("runtime")
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		color.NoColor = true
	}
	return printEvents(cmd.OutOrStdout(), events, only)
}

var (
	doneColor  = color.New(color.FgGreen)
	yieldColor = color.New(color.FgCyan)
	awaitColor = color.New(color.FgYellow)
)

func resultColor(r cco.Result) *color.Color {
	switch {
	case r == cco.Done:
		return doneColor
	case r.Has(cco.Await):
		return awaitColor
	default:
		return yieldColor
	}
}

func printEvents(w io.Writer, events []trace.Event, only string) error {
	for _, e := range events {
		if only != "" && e.Runtime != only {
			continue
		}
		popped := ""
		if e.Popped {
			popped = " popped"
		}
		r := e.Signal()
		_, err := fmt.Fprintf(w, "%-12s %4d %-10s %s depth=%d%s\n",
			e.Runtime, e.Step, e.Task, resultColor(r).Sprintf("%-11v", r), e.Depth, popped)
		if err != nil {
			return err
		}
	}
	return nil
}
