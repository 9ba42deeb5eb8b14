package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/txm19/Malloc-Implementation/heap/alloc"
	"github.com/txm19/Malloc-Implementation/heap/trace"
)

func init() {
	cmd := newRunCmd()
	addReplayFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <trace>",
		Short: "Replay a trace and report the outcome",
		Long: `The run command replays an allocation trace and prints a summary of the
replay followed by the heap management statistics.

Example:
  heapctl run workload.trace
  heapctl run workload.trace --strategy best --limit 65536
  heapctl run workload.trace --mapped /tmp/heap.bin --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args)
		},
	}
	return cmd
}

type runOutput struct {
	Trace    string       `json:"trace"`
	Strategy string       `json:"strategy"`
	Result   trace.Result `json:"result"`
	Stats    alloc.Stats  `json:"stats"`
}

func runRun(args []string) error {
	s, err := replayTrace(args[0])
	if err != nil {
		return err
	}
	defer s.Close()

	if jsonOut {
		return printSessionJSON(s, runOutput{
			Trace:    s.Trace,
			Strategy: s.Strategy.String(),
			Result:   s.Result,
			Stats:    s.Heap.Stats(),
		})
	}

	if !quiet {
		writeResult(os.Stdout, s)
		writeStats(os.Stdout, s.Heap.Stats())
	}
	return s.Close()
}
