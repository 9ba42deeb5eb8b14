package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/txm19/Malloc-Implementation/internal/logger"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	logFile string
)

// closeLog releases the log file opened by the root pre-run hook.
var closeLog = func() error { return nil }

var rootCmd = &cobra.Command{
	Use:   "heapctl",
	Short: "Replay allocation traces against an explicit free-list heap",
	Long: `heapctl replays allocation scripts (malloc, calloc, realloc, free) against
a free-list heap allocator and reports the resulting heap statistics and layout.
The heap lives in memory or in a memory-mapped scratch file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		c, err := logger.Init(logger.Options{
			Enabled: verbose || logFile != "",
			Level:   level,
			File:    logFile,
		})
		if err != nil {
			return fmt.Errorf("failed to open log: %w", err)
		}
		closeLog = c
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging to stderr")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append structured logs to this file")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		printError("%v\n", err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printSessionJSON outputs v as JSON and closes s, reporting a failed flush of a
// mapped heap.
func printSessionJSON(s *session, v any) error {
	if err := printJSON(v); err != nil {
		return err
	}
	return s.Close()
}
