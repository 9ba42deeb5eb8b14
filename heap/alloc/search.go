package alloc

// fitter is a free-block search policy. find returns the chosen block (or noBlock)
// and the last non-matching block it visited; on a miss that block is the tail,
// which is where Arena Growth links the new block.
type fitter interface {
	find(s *store, need int) (cand, pred block)

	// placed reports the block that satisfied a request.
	placed(b block)

	// absorbed reports that dead was merged into into by the coalescer.
	absorbed(dead, into block)
}

func newFitter(st Strategy) fitter {
	switch st {
	case BestFit:
		return &bestFit{}
	case WorstFit:
		return &worstFit{}
	case NextFit:
		return &nextFit{last: noBlock}
	default:
		return &firstFit{}
	}
}

// stateless is embedded by policies that keep no cursor.
type stateless struct{}

func (stateless) placed(block)          {}
func (stateless) absorbed(block, block) {}

func fits(s *store, b block, need int) bool {
	return s.isFree(b) && s.size(b) >= need
}

type firstFit struct{ stateless }

func (firstFit) find(s *store, need int) (block, block) {
	return scan(s, s.first(), need, noBlock)
}

// scan walks from start to the tail and stops at the first fit.
func scan(s *store, start block, need int, pred block) (block, block) {
	for b := start; b != noBlock; b = s.next(b) {
		if fits(s, b, need) {
			return b, pred
		}
		pred = b
	}
	return noBlock, pred
}

type bestFit struct{ stateless }

// find keeps the smallest fit; ties keep the first one seen.
func (bestFit) find(s *store, need int) (block, block) {
	best, pred := noBlock, noBlock
	bestSize := 0
	for b := s.first(); b != noBlock; b = s.next(b) {
		if fits(s, b, need) && (best == noBlock || s.size(b) < bestSize) {
			best, bestSize = b, s.size(b)
			continue
		}
		pred = b
	}
	return best, pred
}

type worstFit struct{ stateless }

// find keeps the largest fit; ties keep the first one seen.
func (worstFit) find(s *store, need int) (block, block) {
	worst, pred := noBlock, noBlock
	worstSize := 0
	for b := s.first(); b != noBlock; b = s.next(b) {
		if fits(s, b, need) && (worst == noBlock || s.size(b) > worstSize) {
			worst, worstSize = b, s.size(b)
			continue
		}
		pred = b
	}
	return worst, pred
}

// nextFit remembers the block that satisfied the previous request.
type nextFit struct {
	last block
}

func (f *nextFit) find(s *store, need int) (block, block) {
	if f.last != noBlock {
		if b, pred := scan(s, s.next(f.last), need, f.last); b != noBlock {
			return b, pred
		}
	}
	// Nothing between the cursor and the tail: full scan from the head.
	return scan(s, s.first(), need, noBlock)
}

func (f *nextFit) placed(b block) { f.last = b }

func (f *nextFit) absorbed(dead, into block) {
	if f.last == dead {
		f.last = into
	}
}
