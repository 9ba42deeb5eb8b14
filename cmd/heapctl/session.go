package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/txm19/Malloc-Implementation/heap/alloc"
	"github.com/txm19/Malloc-Implementation/heap/arena"
	"github.com/txm19/Malloc-Implementation/heap/trace"
	"github.com/txm19/Malloc-Implementation/internal/logger"
)

// envStrategy names the environment variable holding the default fit policy.
const envStrategy = "HEAP_FIT"

var (
	// Replay flags, shared by run, stats and dump
	replayStrategy string
	replayLimit    int
	replayMapped   string
)

func addReplayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&replayStrategy, "strategy", "s", "",
		"Fit policy: first, best, worst or next (default $"+envStrategy+", else first)")
	cmd.Flags().IntVar(&replayLimit, "limit", 0, "Cap the heap at this many bytes (0 = arena maximum)")
	cmd.Flags().StringVar(&replayMapped, "mapped", "", "Back the heap with this memory-mapped scratch file")
}

// resolveStrategy applies the flag, then $HEAP_FIT, then first-fit.
func resolveStrategy() (alloc.Strategy, error) {
	name := replayStrategy
	if name == "" {
		name = os.Getenv(envStrategy)
	}
	if name == "" {
		return alloc.FirstFit, nil
	}
	return alloc.ParseStrategy(name)
}

// host is an arena region the session owns.
type host interface {
	alloc.Host
	Len() int
	Limit() int
}

// session is one replayed trace.
type session struct {
	Trace    string
	Strategy alloc.Strategy
	Heap     *alloc.Allocator
	Result   trace.Result

	host  host
	close func() error
}

// Close releases the heap's backing file, if any. Closing twice is a no-op.
func (s *session) Close() error {
	if s.close == nil {
		return nil
	}
	c := s.close
	s.close = nil
	return c()
}

func openHost() (host, func() error, error) {
	if replayMapped == "" {
		return arena.NewMemory(replayLimit), nil, nil
	}
	m, err := arena.OpenMapped(replayMapped, replayLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open mapped heap: %w", err)
	}
	closeFn := func() error {
		if err := m.Sync(); err != nil {
			_ = m.Close()
			return err
		}
		return m.Close()
	}
	return m, closeFn, nil
}

// replayTrace parses the script at path and replays it against a fresh heap.
// The caller must Close the returned session.
func replayTrace(path string) (*session, error) {
	st, err := resolveStrategy()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace: %w", err)
	}
	ops, err := trace.Parse(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	h, closeFn, err := openHost()
	if err != nil {
		return nil, err
	}
	s := &session{
		Trace:    path,
		Strategy: st,
		Heap:     alloc.New(h, alloc.WithStrategy(st), alloc.WithLogger(logger.L)),
		host:     h,
		close:    closeFn,
	}

	printVerbose("Replaying %s: %d ops, %s, heap limit %d bytes\n", path, len(ops), st, h.Limit())
	logger.Info("replay", "trace", path, "ops", len(ops), "strategy", st.String())
	logger.Debug("host", "mapped", replayMapped, "limit", h.Limit())

	s.Result, err = trace.Replay(s.Heap, ops)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("replay done",
		"ops", s.Result.Ops,
		"failed", s.Result.Failed,
		"peakLive", s.Result.PeakLive,
		"heapBytes", s.host.Len(),
	)
	if s.Result.Failed > 0 {
		logger.Warn("allocations refused",
			"failed", s.Result.Failed,
			"limit", s.host.Limit(),
		)
	}
	return s, nil
}
