//go:build !(linux || darwin || freebsd)

package arena

import (
	"fmt"
	"os"
)

// Mapped is a file-backed region. Without mmap support the region lives in a heap
// copy and every Extend appends zeros to the backing file.
type Mapped struct {
	f     *os.File
	data  []byte
	size  int64
	limit int
}

// OpenMapped creates (or truncates) the file at path and returns an empty region.
// limit caps the region size in bytes; zero selects MaxRegion.
func OpenMapped(path string, limit int) (*Mapped, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, err
	}
	return &Mapped{f: f, limit: limit}, nil
}

// Extend grows the region by n zero bytes and returns the previous end offset.
func (m *Mapped) Extend(n int) (int, error) {
	if m == nil || m.f == nil {
		return 0, ErrClosed
	}
	prev := int(m.size)
	if n < 0 {
		return prev, ErrBadLength
	}
	if n == 0 {
		return prev, nil
	}
	if err := checkExtend(m.limit, prev, n); err != nil {
		return prev, err
	}

	if _, err := m.f.WriteAt(make([]byte, n), m.size); err != nil {
		return prev, fmt.Errorf("%w: write extension: %w", ErrExhausted, err)
	}

	m.data = append(m.data, make([]byte, n)...)
	m.size += int64(n)
	return prev, nil
}

// Bytes returns the region. The slice is invalidated by the next Extend.
func (m *Mapped) Bytes() []byte { return m.data }

// Len returns the current region size in bytes.
func (m *Mapped) Len() int { return int(m.size) }

// Limit returns the effective byte cap.
func (m *Mapped) Limit() int { return capOf(m.limit) }

// Sync writes the heap copy back to the backing file.
func (m *Mapped) Sync() error {
	if m == nil || m.f == nil {
		return ErrClosed
	}
	if _, err := m.f.WriteAt(m.data, 0); err != nil {
		return err
	}
	return m.f.Sync()
}

// Close releases the region and closes the backing file. Closing twice is a no-op.
func (m *Mapped) Close() error {
	if m == nil || m.f == nil {
		return nil
	}
	err := m.f.Close()
	m.f = nil
	m.data = nil
	return err
}
