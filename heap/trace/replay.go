package trace

import (
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/txm19/Malloc-Implementation/heap/alloc"
)

// Heap is the allocator surface Replay drives. *alloc.Allocator and *alloc.Locked
// both satisfy it.
type Heap interface {
	Malloc(size int) (alloc.Ptr, error)
	Calloc(count, elemSize int) (alloc.Ptr, error)
	Realloc(p alloc.Ptr, size int) (alloc.Ptr, error)
	Free(p alloc.Ptr)
	Bytes(p alloc.Ptr) []byte
}

// Result summarizes a replay.
type Result struct {
	Ops      int `json:"ops"`      // operations executed
	Failed   int `json:"failed"`   // allocations refused with alloc.ErrNoMemory
	PeakLive int `json:"peakLive"` // most ids bound to a block at once
	Live     int `json:"live"`     // ids still bound when the script ended
}

type binding struct {
	p alloc.Ptr
	n int // bytes holding the pattern
}

type replayer struct {
	h    Heap
	ids  map[string]binding
	res  Result
	live int
}

// Replay runs ops against h in order. An id bound by m, c or a non-zero r keeps
// its block until f or r 0; binding an id again drops the previous block without
// freeing it. An allocation refused for lack of memory is counted in
// Result.Failed and leaves the id as it was; any other failure stops the replay.
func Replay(h Heap, ops []Op) (Result, error) {
	r := &replayer{h: h, ids: make(map[string]binding)}
	for _, op := range ops {
		if err := r.step(op); err != nil {
			return r.res, fmt.Errorf("line %d: %s: %w", op.Line, op, err)
		}
		r.res.Ops++
		r.res.PeakLive = max(r.res.PeakLive, r.live)
	}
	r.res.Live = r.live
	return r.res, nil
}

func (r *replayer) step(op Op) error {
	switch op.Kind {
	case OpMalloc:
		p, err := r.h.Malloc(op.Size)
		if err != nil {
			return r.refused(err)
		}
		r.bind(op.ID, p, op.Size)
		return nil

	case OpCalloc:
		p, err := r.h.Calloc(op.Count, op.Size)
		if err != nil {
			return r.refused(err)
		}
		n := op.Count * op.Size
		if err := checkZero(r.h, p, n); err != nil {
			return err
		}
		r.bind(op.ID, p, n)
		return nil

	case OpRealloc:
		old, ok := r.ids[op.ID]
		if ok {
			if err := check(r.h, op.ID, old); err != nil {
				return err
			}
		}
		p, err := r.h.Realloc(old.p, op.Size)
		if err != nil {
			return r.refused(err)
		}
		if op.Size == 0 {
			r.unbind(op.ID)
			return nil
		}
		kept := binding{p: p, n: min(old.n, op.Size)}
		if err := check(r.h, op.ID, kept); err != nil {
			return fmt.Errorf("contents not preserved: %w", err)
		}
		r.bind(op.ID, p, op.Size)
		return nil

	case OpFree:
		b, ok := r.ids[op.ID]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownID, op.ID)
		}
		if err := check(r.h, op.ID, b); err != nil {
			return err
		}
		r.h.Free(b.p)
		r.unbind(op.ID)
		return nil

	default:
		return fmt.Errorf("%w: unknown operation %s", ErrSyntax, op.Kind)
	}
}

func (r *replayer) refused(err error) error {
	if errors.Is(err, alloc.ErrNoMemory) {
		r.res.Failed++
		return nil
	}
	return err
}

// bind records p under id and writes the id's pattern over its first n bytes.
// Nil results (zero-size requests) bind nothing.
func (r *replayer) bind(id string, p alloc.Ptr, n int) {
	r.unbind(id)
	if p == alloc.Nil {
		return
	}
	fill(r.h.Bytes(p)[:n], seedOf(id))
	r.ids[id] = binding{p: p, n: n}
	r.live++
}

func (r *replayer) unbind(id string) {
	if _, ok := r.ids[id]; ok {
		delete(r.ids, id)
		r.live--
	}
}

func seedOf(id string) byte {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return byte(h.Sum32())
}

func fill(data []byte, seed byte) {
	for i := range data {
		data[i] = seed + byte(i)
	}
}

func check(h Heap, id string, b binding) error {
	if b.p == alloc.Nil || b.n == 0 {
		return nil
	}
	data := h.Bytes(b.p)
	seed := seedOf(id)
	for i := range b.n {
		if data[i] != seed+byte(i) {
			return fmt.Errorf("%w: %s byte %d = %#x, want %#x", ErrPattern, b.p, i, data[i], seed+byte(i))
		}
	}
	return nil
}

func checkZero(h Heap, p alloc.Ptr, n int) error {
	if p == alloc.Nil {
		return nil
	}
	for i, c := range h.Bytes(p)[:n] {
		if c != 0 {
			return fmt.Errorf("%w: calloc %s byte %d = %#x, want 0", ErrPattern, p, i, c)
		}
	}
	return nil
}
