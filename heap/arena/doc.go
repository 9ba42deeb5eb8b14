// Package arena provides host address-space providers for the heap allocator.
//
// # Overview
//
// The allocator in heap/alloc never asks for memory directly. It consumes a single
// capability from its host: extend one contiguous region by n bytes and report where
// the region ended before the call. Every provider in this package implements that
// contract:
//
//	prev, err := host.Extend(n) // region is now [0, prev+n)
//	data := host.Bytes()        // re-fetch: the region may have moved
//
// # Providers
//
// Memory: a Go byte slice grown in place (amortized append).
//
//   - Optional byte limit to simulate exhaustion in tests and tools
//   - New bytes are always zero
//
// Mapped: a file-backed shared memory mapping (unix only; other platforms read and
// write the file through a heap copy).
//
//   - Each Extend truncates the backing file to the new size and remaps it
//   - On a failed truncate or remap the previous mapping is restored
//   - Sync flushes dirty pages with msync; Close unmaps and closes the file
//
// # Offsets, not addresses
//
// Because Extend may move the region, callers address memory by offset from the start
// of the region. Slices returned by Bytes are invalidated by the next Extend.
//
// # Thread Safety
//
// Providers are not thread-safe. The allocator serializes access to its host.
package arena
