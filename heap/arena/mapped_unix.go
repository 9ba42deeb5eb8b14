//go:build linux || darwin || freebsd

package arena

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Mapped is a region backed by a shared, writable mapping of a file.
// The file is truncated to zero length on open; its contents are scratch space.
type Mapped struct {
	f     *os.File
	data  []byte
	size  int64
	limit int
}

// OpenMapped creates (or truncates) the file at path and returns an empty mapped
// region. limit caps the region size in bytes; zero selects MaxRegion.
func OpenMapped(path string, limit int) (*Mapped, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, err
	}
	return &Mapped{f: f, limit: limit}, nil
}

// Extend grows the backing file by n bytes, remaps it, and returns the previous
// end offset. The new bytes are zero-initialized by the OS.
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

	newSize := m.size + int64(n)

	// Unmap the current mapping
	if m.data != nil {
		if err := unix.Munmap(m.data); err != nil {
			return prev, fmt.Errorf("arena: failed to unmap before grow: %w", err)
		}
		m.data = nil
	}

	// Truncate file to new size (extends with zeros)
	if err := m.f.Truncate(newSize); err != nil {
		m.remapOld()
		return prev, fmt.Errorf("%w: truncate: %w", ErrExhausted, err)
	}

	data, err := unix.Mmap(
		int(m.f.Fd()),
		0,
		int(newSize),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED,
	)
	if err != nil {
		// Roll the file back so size and mapping agree again.
		_ = m.f.Truncate(m.size)
		m.remapOld()
		return prev, fmt.Errorf("%w: remap: %w", ErrExhausted, err)
	}

	m.data = data
	m.size = newSize
	return prev, nil
}

// remapOld restores the mapping at the current size after a failed grow.
func (m *Mapped) remapOld() {
	if m.size == 0 {
		return
	}
	data, err := unix.Mmap(
		int(m.f.Fd()),
		0,
		int(m.size),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED,
	)
	if err == nil {
		m.data = data
	}
}

// Bytes returns the mapped region. The slice is invalidated by the next Extend.
func (m *Mapped) Bytes() []byte { return m.data }

// Len returns the current region size in bytes.
func (m *Mapped) Len() int { return int(m.size) }

// Limit returns the effective byte cap.
func (m *Mapped) Limit() int { return capOf(m.limit) }

// Sync flushes the mapping to the backing file.
func (m *Mapped) Sync() error {
	if m == nil || m.f == nil {
		return ErrClosed
	}
	if len(m.data) == 0 {
		return nil
	}
	return unix.Msync(m.data, unix.MS_SYNC)
}

// Close unmaps the region and closes the backing file. Closing twice is a no-op.
func (m *Mapped) Close() error {
	if m == nil {
		return nil
	}
	var err error
	if m.data != nil {
		if unmapErr := unix.Munmap(m.data); unmapErr != nil && !errors.Is(unmapErr, unix.EINVAL) {
			err = unmapErr
		}
		m.data = nil
	}
	if m.f != nil {
		if closeErr := m.f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		m.f = nil
	}
	return err
}
