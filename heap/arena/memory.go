package arena

// Memory is an in-process region backed by a Go byte slice.
type Memory struct {
	data []byte

	// limit caps the region size in bytes (0 = MaxRegion).
	limit int

	// extends counts successful Extend calls.
	extends int
}

// NewMemory returns an empty region. limit caps the total region size in bytes;
// zero selects MaxRegion.
func NewMemory(limit int) *Memory {
	return &Memory{limit: limit}
}

// Extend grows the region by n zero bytes and returns the previous end offset.
// It fails with ErrExhausted when the limit would be exceeded, leaving the region
// unchanged.
func (m *Memory) Extend(n int) (int, error) {
	prev := len(m.data)
	if n < 0 {
		return prev, ErrBadLength
	}
	if n == 0 {
		return prev, nil
	}
	if err := checkExtend(m.limit, prev, n); err != nil {
		return prev, err
	}

	// Memory past len is never written, so the appended bytes are zero.
	m.data = append(m.data, make([]byte, n)...)
	m.extends++
	return prev, nil
}

// Bytes returns the whole region. The slice is invalidated by the next Extend.
func (m *Memory) Bytes() []byte { return m.data }

// Len returns the current region size in bytes.
func (m *Memory) Len() int { return len(m.data) }

// Limit returns the effective byte cap.
func (m *Memory) Limit() int { return capOf(m.limit) }

// Extends returns the number of successful non-empty Extend calls.
func (m *Memory) Extends() int { return m.extends }
