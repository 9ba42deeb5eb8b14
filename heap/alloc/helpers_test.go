package alloc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/txm19/Malloc-Implementation/heap/arena"
)

var allStrategies = []Strategy{FirstFit, BestFit, WorstFit, NextFit}

// newTestAllocator returns an allocator over an in-memory host. limit caps the
// arena size in bytes (0 = unlimited).
func newTestAllocator(t testing.TB, st Strategy, limit int) (*Allocator, *arena.Memory) {
	t.Helper()
	host := arena.NewMemory(limit)
	return New(host, WithStrategy(st)), host
}

// assertInvariants fails the test if the block list is inconsistent.
func assertInvariants(t testing.TB, a *Allocator) {
	t.Helper()
	require.NoError(t, a.Check())
}

// blocks returns the current block list.
func blocks(a *Allocator) []BlockInfo {
	var out []BlockInfo
	a.Walk(func(b BlockInfo) bool {
		out = append(out, b)
		return true
	})
	return out
}

// freeBlocks returns the sizes of the free blocks in address order.
func freeBlocks(a *Allocator) []int {
	var out []int
	a.Walk(func(b BlockInfo) bool {
		if b.Free {
			out = append(out, b.Size)
		}
		return true
	})
	return out
}

// mustMalloc allocates size bytes or fails the test.
func mustMalloc(t testing.TB, a *Allocator, size int) Ptr {
	t.Helper()
	p, err := a.Malloc(size)
	require.NoError(t, err)
	require.NotEqual(t, Nil, p)
	return p
}

// newFreeLayout builds free blocks of the given sizes, in order, each followed by a
// 4-byte in-use separator so they cannot coalesce. Returns the free pointers.
func newFreeLayout(t testing.TB, a *Allocator, sizes ...int) []Ptr {
	t.Helper()
	ptrs := make([]Ptr, len(sizes))
	for i, sz := range sizes {
		ptrs[i] = mustMalloc(t, a, sz)
		mustMalloc(t, a, 4)
	}
	for _, p := range ptrs {
		a.Free(p)
	}
	require.Equal(t, sizes, freeBlocks(a))
	assertInvariants(t, a)
	return ptrs
}

// fill writes a byte pattern derived from seed into p's payload.
func fill(a *Allocator, p Ptr, seed byte) {
	data := a.Bytes(p)
	for i := range data {
		data[i] = seed + byte(i)
	}
}

// verify checks that the first n bytes of p's payload hold the fill pattern.
func verify(t testing.TB, a *Allocator, p Ptr, seed byte, n int) {
	t.Helper()
	data := a.Bytes(p)
	require.GreaterOrEqual(t, len(data), n)
	for i := range n {
		if data[i] != seed+byte(i) {
			t.Fatalf("payload %v byte %d = 0x%x, want 0x%x", p, i, data[i], seed+byte(i))
		}
	}
}

// requirePanicsWith runs fn and requires that it panics with an error wrapping target.
func requirePanicsWith(t testing.TB, target error, fn func()) {
	t.Helper()
	var recovered any
	func() {
		defer func() { recovered = recover() }()
		fn()
	}()
	require.NotNil(t, recovered, "expected panic wrapping %v", target)
	err, ok := recovered.(error)
	require.True(t, ok, "panic value %v is not an error", recovered)
	require.True(t, errors.Is(err, target), "panic %v does not wrap %v", err, target)
}

func roundUp(n int) int { return (n + Align - 1) &^ (Align - 1) }

func describe(a *Allocator) string {
	s := ""
	a.Walk(func(b BlockInfo) bool {
		state := "used"
		if b.Free {
			state = "free"
		}
		s += fmt.Sprintf("[%#x %d %s] ", b.Header, b.Size, state)
		return true
	})
	return s
}
