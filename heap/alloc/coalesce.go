package alloc

// coalesce merges every run of adjacent free blocks in one head-to-tail pass.
// A free block keeps absorbing its successor while the successor is free, so runs of
// any length collapse into their first block before the cursor advances.
// Returns the number of headers absorbed.
func (a *Allocator) coalesce() int {
	merged := 0
	for b := a.st.first(); b != noBlock; b = a.st.next(b) {
		if !a.st.isFree(b) {
			continue
		}
		for {
			n := a.st.next(b)
			if n == noBlock || !a.st.isFree(n) {
				break
			}
			a.absorb(b, n)
			merged++
		}
	}
	if merged > 0 {
		a.log.Debug("coalesce", "merged", merged, "blocks", a.stats.Blocks)
	}
	return merged
}

// absorb folds n (the successor of b) into b. n's header becomes payload.
func (a *Allocator) absorb(b, n block) {
	a.st.setSize(b, a.st.size(b)+HeaderSize+a.st.size(n))
	a.st.setNext(b, a.st.next(n))
	a.fit.absorbed(n, b)
	a.stats.Coalesces++
	a.stats.Blocks--
}
