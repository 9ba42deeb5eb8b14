package main

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/txm19/Malloc-Implementation/heap/alloc"
)

// printer groups digits in report numbers (1,234,567).
var printer = message.NewPrinter(language.English)

// writeStats prints the statistics report with grouped numbers.
func writeStats(w io.Writer, st alloc.Stats) {
	printer.Fprintf(w, "\nHeap management statistics\n")
	for _, r := range st.Rows() {
		printer.Fprintf(w, "  %-11s %d\n", r.Label+":", r.Value)
	}
}

// writeResult prints the replay summary.
func writeResult(w io.Writer, s *session) {
	printer.Fprintf(w, "Trace:     %s\n", s.Trace)
	printer.Fprintf(w, "Strategy:  %s\n", s.Strategy)
	printer.Fprintf(w, "Ops:       %d\n", s.Result.Ops)
	printer.Fprintf(w, "Failed:    %d\n", s.Result.Failed)
	printer.Fprintf(w, "Peak live: %d\n", s.Result.PeakLive)
	printer.Fprintf(w, "Live:      %d\n", s.Result.Live)
}
