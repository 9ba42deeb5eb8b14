package trace

import "errors"

var (
	// ErrSyntax indicates a malformed script line.
	ErrSyntax = errors.New("trace: syntax error")

	// ErrUnknownID indicates a free of an id that is not bound to a block.
	ErrUnknownID = errors.New("trace: unknown id")

	// ErrPattern indicates a payload no longer holds the bytes written to it.
	ErrPattern = errors.New("trace: payload pattern mismatch")
)
