package alloc

import (
	"fmt"

	"github.com/txm19/Malloc-Implementation/internal/buf"
)

// grow asks the host for exactly one header plus size bytes and appends the new
// in-use block after last (the tail), or installs it as the head of an empty list.
// On failure the block list is unchanged.
func (a *Allocator) grow(last block, size int) (block, error) {
	total, ok := buf.AddOverflowSafe(HeaderSize, size)
	if !ok {
		return noBlock, fmt.Errorf("%w: request of %d bytes overflows", ErrNoMemory, size)
	}

	prev, err := a.host.Extend(total)
	if err != nil {
		a.log.Debug("grow failed", "need", size, "err", err)
		return noBlock, fmt.Errorf("%w: %w", ErrNoMemory, err)
	}

	b := block(prev)
	a.st.writeHeader(b, size, noBlock, false)
	if last == noBlock {
		a.st.head = b
	} else {
		a.st.setNext(last, b)
	}

	a.stats.Grows++
	a.stats.Blocks++
	a.stats.HeapBytes += int64(total)
	a.log.Debug("grow", "block", payloadOf(b), "size", size, "heap", a.stats.HeapBytes)
	return b, nil
}
