package alloc

import "github.com/txm19/Malloc-Implementation/internal/buf"

// Block header layout (little endian):
//
//	0x00  u64  payload size in bytes
//	0x08  u64  next header offset + 1 (0 = no successor)
//	0x10  u32  flags
const (
	// HeaderSize is the size of a block header. It is a multiple of Align so that
	// every payload keeps the arena's 4-byte granularity.
	HeaderSize = 20

	// Align is the payload size granularity.
	Align = 4

	hdrSizeOff  = 0x00
	hdrNextOff  = 0x08
	hdrFlagsOff = 0x10

	flagFree uint32 = 1 << 0
)

// block is the arena offset of a block header.
type block int

const noBlock block = -1

// store is the intrusive block list threaded through the host region.
// Headers live in the arena; the store itself only remembers the head.
type store struct {
	host Host
	head block
}

func newStore(host Host) store {
	return store{host: host, head: noBlock}
}

func (s *store) data() []byte { return s.host.Bytes() }

func (s *store) first() block { return s.head }

func (s *store) size(b block) int {
	return int(buf.U64LE(s.data()[int(b)+hdrSizeOff:]))
}

func (s *store) setSize(b block, n int) {
	buf.PutU64LE(s.data()[int(b)+hdrSizeOff:], uint64(n))
}

func (s *store) next(b block) block {
	v := buf.U64LE(s.data()[int(b)+hdrNextOff:])
	if v == 0 {
		return noBlock
	}
	return block(v - 1)
}

func (s *store) setNext(b, n block) {
	var v uint64
	if n != noBlock {
		v = uint64(n) + 1
	}
	buf.PutU64LE(s.data()[int(b)+hdrNextOff:], v)
}

func (s *store) isFree(b block) bool {
	return buf.U32LE(s.data()[int(b)+hdrFlagsOff:])&flagFree != 0
}

func (s *store) setFree(b block, free bool) {
	flags := buf.U32LE(s.data()[int(b)+hdrFlagsOff:])
	if free {
		flags |= flagFree
	} else {
		flags &^= flagFree
	}
	buf.PutU32LE(s.data()[int(b)+hdrFlagsOff:], flags)
}

// writeHeader initializes a header in place.
func (s *store) writeHeader(b block, size int, next block, free bool) {
	s.setSize(b, size)
	s.setNext(b, next)
	var flags uint32
	if free {
		flags = flagFree
	}
	buf.PutU32LE(s.data()[int(b)+hdrFlagsOff:], flags)
}

// payload returns b's payload, capped so appends cannot spill into the next header.
func (s *store) payload(b block) []byte {
	p, ok := buf.Slice(s.data(), int(b)+HeaderSize, s.size(b))
	if !ok {
		return nil
	}
	return p[:len(p):len(p)]
}

// lookup finds the block whose payload starts at p.
func (s *store) lookup(p Ptr) (block, bool) {
	want := headerOf(p)
	if !buf.Has(s.data(), int(want), HeaderSize) {
		return noBlock, false
	}
	for b := s.first(); b != noBlock && b <= want; b = s.next(b) {
		if b == want {
			return b, true
		}
	}
	return noBlock, false
}

func payloadOf(b block) Ptr { return Ptr(int(b) + HeaderSize) }

func headerOf(p Ptr) block { return block(int(p) - HeaderSize) }
