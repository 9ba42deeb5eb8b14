// Package alloc implements an explicit free-list heap allocator over a single,
// monotonically growing arena.
//
// # Overview
//
// Every block is a 20-byte header followed by its payload. Headers live inside the
// arena and are linked in address order; the allocator never reorders them because
// new blocks are always appended at the arena's high-water mark.
//
//	| hdr | payload ... | hdr | payload ... | hdr | payload ... |
//	  ^ head            ^ next              ^ tail == arena end
//
// Pointers (Ptr) are payload offsets into the arena, not Go pointers, so the host is
// free to move the region when it grows.
//
// # Allocation
//
//	a := alloc.New(arena.NewMemory(0), alloc.WithStrategy(alloc.BestFit))
//
//	p, err := a.Malloc(100)  // rounded up to 100 (multiple of 4)
//	if err != nil {
//	    return err           // errors.Is(err, alloc.ErrNoMemory)
//	}
//	copy(a.Bytes(p), data)
//
//	p, err = a.Realloc(p, 400)
//	a.Free(p)
//
// Malloc searches the block list with the configured Strategy. On a hit the block is
// reused, and split when the leftover can hold a header plus payload. On a miss the
// arena grows by exactly one header plus the rounded request: there is no
// over-allocation, so Stats().Grows counts the requests that found no free block.
//
// # Strategies
//
//	FirstFit  first free block large enough, from the head
//	BestFit   smallest free block large enough
//	WorstFit  largest free block large enough
//	NextFit   first fit, resuming after the previous hit
//
// # Release
//
// Free marks the block free and runs a single left-to-right pass that merges every
// run of adjacent free blocks. Freeing a pointer that is not live (a double free or
// a foreign offset) panics with ErrDoubleFree or ErrInvalidPointer.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Wrap one in Locked to share it between
// goroutines.
package alloc
