package alloc

import "errors"

var (
	// ErrNoMemory indicates that no free block was large enough and the host could not
	// extend the arena, or that the request size cannot be represented.
	ErrNoMemory = errors.New("alloc: out of memory")

	// ErrBadSize indicates a negative size argument.
	ErrBadSize = errors.New("alloc: negative size")

	// ErrInvalidPointer indicates a pointer that is not the payload of any live block.
	// Raised with panic; never returned.
	ErrInvalidPointer = errors.New("alloc: pointer was not returned by the allocator")

	// ErrDoubleFree indicates a pointer whose block is already free.
	// Raised with panic; never returned.
	ErrDoubleFree = errors.New("alloc: block is already free")

	// ErrCorrupt indicates that the block list violates a layout invariant.
	ErrCorrupt = errors.New("alloc: block list corrupt")
)
