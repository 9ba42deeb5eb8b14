package alloc

import (
	"fmt"
	"log/slog"

	"github.com/txm19/Malloc-Implementation/internal/buf"
)

// Allocator is an explicit free-list heap over a Host region.
// It is not safe for concurrent use; see Locked.
type Allocator struct {
	host     Host
	st       store
	fit      fitter
	strategy Strategy
	log      *slog.Logger
	stats    Stats
}

// New creates an allocator over host. The host region may already hold bytes; the
// first block is placed wherever the first Extend reports the region ended.
func New(host Host, opts ...Option) *Allocator {
	a := &Allocator{
		host:     host,
		st:       newStore(host),
		strategy: FirstFit,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = defaultLogger()
	}
	a.log = a.log.With("strategy", a.strategy.String())
	a.fit = newFitter(a.strategy)
	return a
}

// Strategy returns the search policy chosen at construction.
func (a *Allocator) Strategy() Strategy { return a.strategy }

// Malloc returns a block of at least size bytes, rounded up to a multiple of Align.
//
// A zero size returns (Nil, nil) without touching the arena. When no free block fits
// and the host cannot extend the arena, Malloc returns an error wrapping ErrNoMemory.
func (a *Allocator) Malloc(size int) (Ptr, error) {
	if size == 0 {
		return Nil, nil
	}
	if size < 0 {
		return Nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}
	need, ok := buf.AlignUp(size, Align)
	if !ok {
		return Nil, fmt.Errorf("%w: request of %d bytes overflows", ErrNoMemory, size)
	}

	b, err := a.malloc(need)
	if err != nil {
		return Nil, err
	}
	return payloadOf(b), nil
}

func (a *Allocator) malloc(need int) (block, error) {
	b, last := a.fit.find(&a.st, need)
	if b != noBlock {
		a.stats.Reuses++
		a.split(b, need)
		a.st.setFree(b, false)
	} else {
		var err error
		if b, err = a.grow(last, need); err != nil {
			return noBlock, err
		}
	}

	a.fit.placed(b)
	a.stats.Mallocs++
	a.stats.Requested += int64(need)
	return b, nil
}

// Free releases the block at p and merges adjacent free blocks. Free(Nil) is a no-op.
//
// p must be a pointer returned by this allocator that has not been freed since.
// Anything else is a programming error: Free panics with an error wrapping
// ErrDoubleFree or ErrInvalidPointer. A second Free of a block that has already been
// merged into a neighbour reports ErrInvalidPointer, since its header no longer exists.
func (a *Allocator) Free(p Ptr) {
	if p == Nil {
		return
	}
	b := a.mustLookup(p, "free")
	a.st.setFree(b, true)
	a.stats.Frees++
	a.coalesce()
}

// Calloc allocates count*elemSize bytes and zero-fills the whole payload, including
// rounding slack. Either argument being zero returns (Nil, nil). A product that
// overflows int returns an error wrapping ErrNoMemory.
func (a *Allocator) Calloc(count, elemSize int) (Ptr, error) {
	if count == 0 || elemSize == 0 {
		return Nil, nil
	}
	if count < 0 || elemSize < 0 {
		return Nil, fmt.Errorf("%w: %d * %d", ErrBadSize, count, elemSize)
	}
	n, ok := buf.MulOverflowSafe(count, elemSize)
	if !ok {
		return Nil, fmt.Errorf("%w: %d * %d overflows", ErrNoMemory, count, elemSize)
	}

	p, err := a.Malloc(n)
	if err != nil {
		return Nil, err
	}
	clear(a.st.payload(headerOf(p)))
	return p, nil
}

// Realloc resizes the block at p to at least size bytes, preserving the first
// min(old, size) bytes.
//
//   - size == 0 frees p and returns (Nil, nil)
//   - p == Nil behaves like Malloc(size)
//   - a block that already holds size bytes shrinks in place, returning p
//   - a block followed by a large enough free block grows in place, returning p
//   - otherwise the contents move to a new block and p is freed
//
// On ErrNoMemory the original block is left untouched.
func (a *Allocator) Realloc(p Ptr, size int) (Ptr, error) {
	if size == 0 {
		a.Free(p)
		return Nil, nil
	}
	if p == Nil {
		return a.Malloc(size)
	}
	if size < 0 {
		return Nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}

	b := a.mustLookup(p, "realloc")
	need, ok := buf.AlignUp(size, Align)
	if !ok {
		return Nil, fmt.Errorf("%w: request of %d bytes overflows", ErrNoMemory, size)
	}

	old := a.st.size(b)
	if old >= need {
		if a.split(b, need) {
			a.coalesce()
		}
		return p, nil
	}

	if a.growInPlace(b, need) {
		return p, nil
	}

	nb, err := a.malloc(need)
	if err != nil {
		return Nil, err
	}
	// Growth may have moved the region; payload slices are fetched afresh.
	copy(a.st.payload(nb), a.st.payload(b)[:min(old, size)])
	a.Free(p)
	return payloadOf(nb), nil
}

// growInPlace absorbs b's free right neighbour when the combined span covers need,
// then splits off any excess.
func (a *Allocator) growInPlace(b block, need int) bool {
	n := a.st.next(b)
	if n == noBlock || !a.st.isFree(n) {
		return false
	}
	if a.st.size(b)+HeaderSize+a.st.size(n) < need {
		return false
	}
	a.absorb(b, n)
	a.split(b, need)
	return true
}

// Bytes returns the payload of the live block at p. Its length is the block's
// capacity, which may exceed the requested size. The slice is invalidated by any
// later call that grows the arena.
func (a *Allocator) Bytes(p Ptr) []byte {
	return a.st.payload(a.mustLookup(p, "bytes"))
}

// Size returns the payload capacity of the live block at p.
func (a *Allocator) Size(p Ptr) int {
	return a.st.size(a.mustLookup(p, "size"))
}

// Stats returns a snapshot of the lifetime counters.
func (a *Allocator) Stats() Stats { return a.stats }

// mustLookup resolves p to a live block or panics.
func (a *Allocator) mustLookup(p Ptr, op string) block {
	b, ok := a.st.lookup(p)
	if !ok {
		panic(fmt.Errorf("%w: %s(%v)", ErrInvalidPointer, op, p))
	}
	if a.st.isFree(b) {
		panic(fmt.Errorf("%w: %s(%v)", ErrDoubleFree, op, p))
	}
	return b
}
