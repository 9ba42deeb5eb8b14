package buf

import "testing"

func TestEndianHelpers(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}

	if got := U32LE(data); got != 0x67452301 {
		t.Fatalf("U32LE = 0x%x, want 0x67452301", got)
	}
	if got := U64LE(data); got != 0xefcdab8967452301 {
		t.Fatalf("U64LE = 0x%x, want 0xefcdab8967452301", got)
	}

	short := []byte{0xAA}
	if U32LE(short) != 0 || U64LE(short) != 0 {
		t.Fatalf("short reads should return 0")
	}
}

func TestPutRoundTrip(t *testing.T) {
	b := make([]byte, 12)
	PutU64LE(b, 0x1122334455667788)
	PutU32LE(b[8:], 0xdeadbeef)
	if got := U64LE(b); got != 0x1122334455667788 {
		t.Fatalf("U64LE after put = 0x%x", got)
	}
	if got := U32LE(b[8:]); got != 0xdeadbeef {
		t.Fatalf("U32LE after put = 0x%x", got)
	}
	if b[0] != 0x88 {
		t.Fatalf("expected little-endian low byte first, got 0x%x", b[0])
	}

	// Short buffers are left untouched.
	short := []byte{0xAA, 0xBB}
	PutU32LE(short, 0)
	PutU64LE(short, 0)
	if short[0] != 0xAA || short[1] != 0xBB {
		t.Fatalf("short put should not modify buffer")
	}
}
