package alloc

import (
	"fmt"

	"github.com/txm19/Malloc-Implementation/internal/buf"
)

// BlockInfo describes one block during Walk.
type BlockInfo struct {
	Header  int  `json:"header"`  // arena offset of the header
	Payload Ptr  `json:"payload"` // payload pointer (Header + HeaderSize)
	Size    int  `json:"size"`    // payload capacity in bytes
	Free    bool `json:"free"`    // available for reuse
}

// Walk visits every block in address order until fn returns false.
func (a *Allocator) Walk(fn func(BlockInfo) bool) {
	for b := a.st.first(); b != noBlock; b = a.st.next(b) {
		info := BlockInfo{
			Header:  int(b),
			Payload: payloadOf(b),
			Size:    a.st.size(b),
			Free:    a.st.isFree(b),
		}
		if !fn(info) {
			return
		}
	}
}

// Check verifies the block list against the layout invariants:
//   - headers are in ascending address order and contiguous
//   - sizes are positive multiples of Align
//   - the last block ends exactly at the end of the host region
//   - no two adjacent blocks are both free
//   - the number of headers equals Stats().Blocks
//
// Returns an error wrapping ErrCorrupt on the first violation.
func (a *Allocator) Check() error {
	dataLen := len(a.host.Bytes())
	maxBlocks := dataLen / HeaderSize

	count := 0
	prevFree := false
	for b := a.st.first(); b != noBlock; b = a.st.next(b) {
		count++
		if count > maxBlocks {
			return fmt.Errorf("%w: more than %d headers, list has a cycle", ErrCorrupt, maxBlocks)
		}
		if _, err := buf.CheckRange(dataLen, int(b), HeaderSize); err != nil {
			return fmt.Errorf("%w: header %#x: %w", ErrCorrupt, int(b), err)
		}

		size := a.st.size(b)
		if size <= 0 || size%Align != 0 {
			return fmt.Errorf("%w: block %#x has size %d", ErrCorrupt, int(b), size)
		}
		end, err := buf.CheckRange(dataLen, int(b)+HeaderSize, size)
		if err != nil {
			return fmt.Errorf("%w: block %#x payload: %w", ErrCorrupt, int(b), err)
		}

		free := a.st.isFree(b)
		if free && prevFree {
			return fmt.Errorf("%w: block %#x and its predecessor are both free", ErrCorrupt, int(b))
		}
		prevFree = free

		n := a.st.next(b)
		switch {
		case n == noBlock && end != dataLen:
			return fmt.Errorf("%w: tail %#x ends at %d, arena ends at %d", ErrCorrupt, int(b), end, dataLen)
		case n != noBlock && int(n) != end:
			return fmt.Errorf("%w: block %#x ends at %d but next header is %#x", ErrCorrupt, int(b), end, int(n))
		}
	}

	if count != a.stats.Blocks {
		return fmt.Errorf("%w: walked %d headers, stats report %d", ErrCorrupt, count, a.stats.Blocks)
	}
	return nil
}
