// Package trace parses and replays allocation scripts against a heap.
//
// A script is line oriented. Blank lines and anything after '#' are ignored:
//
//	m <id> <size>          malloc, bind the result to id
//	c <id> <count> <size>  calloc, bind the result to id
//	r <id> <size>          realloc the block bound to id (Nil when unbound)
//	f <id>                 free the block bound to id
//
// Replay fills every payload with a byte pattern derived from its id and checks
// the pattern before each free and realloc, so overlapping blocks show up as
// ErrPattern rather than silent corruption.
package trace
