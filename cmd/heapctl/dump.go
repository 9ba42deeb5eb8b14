package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/txm19/Malloc-Implementation/heap/alloc"
)

var dumpFreeOnly bool

func init() {
	cmd := newDumpCmd()
	addReplayFlags(cmd)
	cmd.Flags().BoolVar(&dumpFreeOnly, "free", false, "List only free blocks")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <trace>",
		Short: "Replay a trace and list the heap blocks",
		Long: `The dump command replays an allocation trace, lists every block left in the
heap (header offset, payload size, state) and verifies the layout invariants.

Example:
  heapctl dump workload.trace
  heapctl dump workload.trace --free --strategy worst`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

type dumpOutput struct {
	Blocks []alloc.BlockInfo `json:"blocks"`
	Free   int               `json:"free"`
	Used   int               `json:"used"`
	Valid  bool              `json:"valid"`
	Error  string            `json:"error,omitempty"`
}

func runDump(args []string) error {
	s, err := replayTrace(args[0])
	if err != nil {
		return err
	}
	defer s.Close()

	out := dumpOutput{Blocks: []alloc.BlockInfo{}}
	s.Heap.Walk(func(b alloc.BlockInfo) bool {
		if b.Free {
			out.Free++
		} else {
			out.Used++
		}
		if b.Free || !dumpFreeOnly {
			out.Blocks = append(out.Blocks, b)
		}
		return true
	})
	checkErr := s.Heap.Check()
	out.Valid = checkErr == nil
	if checkErr != nil {
		out.Error = checkErr.Error()
	}

	if jsonOut {
		if checkErr != nil {
			if err := printJSON(out); err != nil {
				return err
			}
			return checkErr
		}
		return printSessionJSON(s, out)
	}

	printInfo("%-10s  %-10s  %10s  %s\n", "HEADER", "PAYLOAD", "SIZE", "STATE")
	for _, b := range out.Blocks {
		state := "used"
		if b.Free {
			state = "free"
		}
		printInfo("%#-10x  %-10v  %10d  %s\n", b.Header, b.Payload, b.Size, state)
	}
	printInfo("\n%d blocks (%d used, %d free)\n", out.Used+out.Free, out.Used, out.Free)

	if checkErr != nil {
		return fmt.Errorf("heap check failed: %w", checkErr)
	}
	printVerbose("Heap check passed\n")
	return s.Close()
}
