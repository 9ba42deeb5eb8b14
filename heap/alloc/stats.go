package alloc

import (
	"fmt"
	"io"
)

// Stats holds the allocator's lifetime counters.
type Stats struct {
	Mallocs   int   `json:"mallocs"`   // successful Malloc calls (including Calloc and moving Realloc)
	Frees     int   `json:"frees"`     // non-nil Free calls (including moving Realloc)
	Reuses    int   `json:"reuses"`    // requests satisfied by an existing free block
	Grows     int   `json:"grows"`     // host Extend calls that succeeded
	Splits    int   `json:"splits"`    // free remainders carved off oversized blocks
	Coalesces int   `json:"coalesces"` // headers absorbed into a neighbouring free block
	Blocks    int   `json:"blocks"`    // live headers currently in the block list
	Requested int64 `json:"requested"` // sum of rounded sizes of successful Mallocs
	HeapBytes int64 `json:"heapBytes"` // bytes obtained from the host, headers included
}

// StatRow is one labelled counter of a Stats report.
type StatRow struct {
	Label string
	Value int64
}

// Rows returns the counters in report order.
func (s Stats) Rows() []StatRow {
	return []StatRow{
		{"mallocs", int64(s.Mallocs)},
		{"frees", int64(s.Frees)},
		{"reuses", int64(s.Reuses)},
		{"grows", int64(s.Grows)},
		{"splits", int64(s.Splits)},
		{"coalesces", int64(s.Coalesces)},
		{"blocks", int64(s.Blocks)},
		{"requested", s.Requested},
		{"max heap", s.HeapBytes},
	}
}

// WriteTo prints the heap management statistics report.
//
//	heap management statistics
//	mallocs:	12
//	frees:		10
//	...
func (s Stats) WriteTo(w io.Writer) (int64, error) {
	var total int64
	n, err := fmt.Fprintf(w, "\nheap management statistics\n")
	total += int64(n)
	if err != nil {
		return total, err
	}
	for _, r := range s.Rows() {
		n, err = fmt.Fprintf(w, "%s:%s%d\n", r.Label, tabsFor(r.Label), r.Value)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// tabsFor aligns values in the report on the second tab stop.
func tabsFor(label string) string {
	if len(label)+1 < 8 {
		return "\t\t"
	}
	return "\t"
}
