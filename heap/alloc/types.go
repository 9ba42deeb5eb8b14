package alloc

import (
	"fmt"
	"strings"
)

// Ptr is the byte offset of a payload inside the arena.
// Offset 0 always holds a header, so it can never be a payload.
type Ptr int

// Nil is the "no allocation" pointer.
const Nil Ptr = 0

// String formats p as a hex offset.
func (p Ptr) String() string {
	if p == Nil {
		return "nil"
	}
	return fmt.Sprintf("%#x", int(p))
}

// Host provides the arena's address space: one contiguous region that only grows.
//
// Implementations:
//   - arena.Memory: Go byte slice with an optional limit
//   - arena.Mapped: file-backed shared mapping
type Host interface {
	// Extend grows the region by n bytes and returns the offset where it ended
	// before the call. On failure the region is unchanged.
	Extend(n int) (prevEnd int, err error)

	// Bytes returns the whole region. It may move after Extend.
	Bytes() []byte
}

// Strategy selects how a free block is chosen for a request.
type Strategy uint8

const (
	// FirstFit takes the first free block large enough, scanning from the head.
	FirstFit Strategy = iota
	// BestFit takes the smallest free block large enough.
	BestFit
	// WorstFit takes the largest free block large enough.
	WorstFit
	// NextFit is FirstFit resuming after the block that satisfied the previous request.
	NextFit
)

var strategyNames = [...]string{
	FirstFit: "first",
	BestFit:  "best",
	WorstFit: "worst",
	NextFit:  "next",
}

// String returns the short strategy name ("first", "best", "worst", "next").
func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", uint8(s))
}

// ParseStrategy maps a name to a Strategy. It accepts the short names as well as
// the "-fit" forms ("best-fit", "bestfit").
func ParseStrategy(name string) (Strategy, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimSuffix(strings.TrimSuffix(n, "fit"), "-")
	for i, s := range strategyNames {
		if s == n {
			return Strategy(i), nil
		}
	}
	return FirstFit, fmt.Errorf("alloc: unknown strategy %q (want first, best, worst or next)", name)
}
