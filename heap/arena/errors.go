package arena

import "errors"

var (
	// ErrExhausted indicates the provider cannot extend the region any further.
	ErrExhausted = errors.New("arena: address space exhausted")

	// ErrClosed indicates an operation on a closed provider.
	ErrClosed = errors.New("arena: provider closed")

	// ErrBadLength indicates a negative extension length.
	ErrBadLength = errors.New("arena: negative extension length")
)
