package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/txm19/Malloc-Implementation/heap/alloc"
	"github.com/txm19/Malloc-Implementation/heap/arena"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		st, err := resolveStrategy()
		if err != nil {
			st = alloc.FirstFit
		}
		fmt.Printf("heapctl %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		fmt.Printf("  header: %d bytes, align %d\n", alloc.HeaderSize, alloc.Align)
		fmt.Printf("  default strategy: %s\n", st)
		printer.Printf("  max heap: %d bytes\n", arena.MaxRegion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
