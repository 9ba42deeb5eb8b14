package alloc

// split shrinks b to need bytes and turns the leftover into a new free block
// spliced in after b. Leftovers of HeaderSize bytes or less stay inside b as slack.
// Returns true when a block was carved.
func (a *Allocator) split(b block, need int) bool {
	size := a.st.size(b)
	rem := size - need
	if rem <= HeaderSize {
		return false
	}

	tail := block(int(b) + HeaderSize + need)
	a.st.writeHeader(tail, rem-HeaderSize, a.st.next(b), true)
	a.st.setSize(b, need)
	a.st.setNext(b, tail)

	a.stats.Splits++
	a.stats.Blocks++
	a.log.Debug("split",
		"block", payloadOf(b),
		"size", size,
		"need", need,
		"remainder", rem-HeaderSize,
	)
	return true
}
