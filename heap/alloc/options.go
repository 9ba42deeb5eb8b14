package alloc

import (
	"io"
	"log/slog"
	"os"
)

// Runtime debug switch for allocator logging - controlled by HEAP_LOG_ALLOC env var.
var logAlloc = os.Getenv("HEAP_LOG_ALLOC") != ""

// Option configures an Allocator.
type Option func(*Allocator)

// WithStrategy selects the free-block search policy. The default is FirstFit.
func WithStrategy(s Strategy) Option {
	return func(a *Allocator) {
		a.strategy = s
	}
}

// WithLogger sets the logger used for Debug-level growth, split and coalesce events.
// A nil logger restores the default.
func WithLogger(l *slog.Logger) Option {
	return func(a *Allocator) {
		a.log = l
	}
}

func defaultLogger() *slog.Logger {
	if logAlloc {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
