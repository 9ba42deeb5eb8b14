package alloc

import "sync"

// Locked serializes every operation of an Allocator behind one mutex, so a search,
// split and growth (or a release and its coalescing pass) run as a single unit.
type Locked struct {
	sync.Mutex
	a *Allocator
}

// NewLocked wraps a. The caller must not use a directly afterwards.
func NewLocked(a *Allocator) *Locked {
	return &Locked{a: a}
}

func (l *Locked) Malloc(size int) (Ptr, error) {
	l.Lock()
	defer l.Unlock()
	return l.a.Malloc(size)
}

func (l *Locked) Calloc(count, elemSize int) (Ptr, error) {
	l.Lock()
	defer l.Unlock()
	return l.a.Calloc(count, elemSize)
}

func (l *Locked) Realloc(p Ptr, size int) (Ptr, error) {
	l.Lock()
	defer l.Unlock()
	return l.a.Realloc(p, size)
}

func (l *Locked) Free(p Ptr) {
	l.Lock()
	defer l.Unlock()
	l.a.Free(p)
}

// Bytes returns the payload at p. Another goroutine's allocation may move the
// region and invalidate the slice; use Do to read or write payloads safely.
func (l *Locked) Bytes(p Ptr) []byte {
	l.Lock()
	defer l.Unlock()
	return l.a.Bytes(p)
}

func (l *Locked) Stats() Stats {
	l.Lock()
	defer l.Unlock()
	return l.a.Stats()
}

func (l *Locked) Check() error {
	l.Lock()
	defer l.Unlock()
	return l.a.Check()
}

// Do runs fn with exclusive access to the underlying allocator.
func (l *Locked) Do(fn func(a *Allocator)) {
	l.Lock()
	defer l.Unlock()
	fn(l.a)
}
