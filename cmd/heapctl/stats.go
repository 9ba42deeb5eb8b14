package main

import (
	"os"

	"github.com/spf13/cobra"
)

var statsReport bool

func init() {
	cmd := newStatsCmd()
	addReplayFlags(cmd)
	cmd.Flags().BoolVar(&statsReport, "report", false, "Print the classic tab-aligned exit report instead")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <trace>",
		Short: "Replay a trace and show heap statistics",
		Long: `The stats command replays an allocation trace and prints only the heap
management statistics: calls, reuse, growth, splits, coalesces and heap size.

Example:
  heapctl stats workload.trace
  heapctl stats workload.trace --report
  heapctl stats workload.trace --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
	return cmd
}

func runStats(args []string) error {
	s, err := replayTrace(args[0])
	if err != nil {
		return err
	}
	defer s.Close()

	if jsonOut {
		return printSessionJSON(s, s.Heap.Stats())
	}
	if quiet {
		return s.Close()
	}
	if statsReport {
		if _, err := s.Heap.Stats().WriteTo(os.Stdout); err != nil {
			return err
		}
		return s.Close()
	}
	writeStats(os.Stdout, s.Heap.Stats())
	return s.Close()
}
