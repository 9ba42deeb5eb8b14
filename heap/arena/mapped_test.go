package arena

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapped_ExtendAndWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.bin")
	m, err := OpenMapped(path, 0)
	require.NoError(t, err)
	defer m.Close()

	require.Equal(t, 0, m.Len())
	require.Empty(t, m.Bytes())

	prev, err := m.Extend(4096)
	require.NoError(t, err)
	require.Equal(t, 0, prev)

	data := m.Bytes()
	require.Len(t, data, 4096)
	copy(data, []byte{0xde, 0xad, 0xbe, 0xef})

	prev, err = m.Extend(8192)
	require.NoError(t, err)
	require.Equal(t, 4096, prev)

	data = m.Bytes()
	require.Len(t, data, 4096+8192)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, data[:4])
	for i := 4096; i < len(data); i++ {
		if data[i] != 0 {
			t.Fatalf("byte %d = 0x%x, want 0", i, data[i])
		}
	}

	require.NoError(t, m.Sync())

	st, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, int64(4096+8192), st.Size())

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, onDisk[:4])
}

func TestMapped_Limit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.bin")
	m, err := OpenMapped(path, 1024)
	require.NoError(t, err)
	defer m.Close()

	_, err = m.Extend(1000)
	require.NoError(t, err)

	_, err = m.Extend(100)
	require.ErrorIs(t, err, ErrExhausted)
	require.Equal(t, 1000, m.Len())
	require.Len(t, m.Bytes(), 1000)
}

func TestMapped_HugeExtendIsExhausted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.bin")
	m, err := OpenMapped(path, 0)
	require.NoError(t, err)
	defer m.Close()

	_, err = m.Extend(64)
	require.NoError(t, err)

	_, err = m.Extend(1 << 50)
	require.ErrorIs(t, err, ErrExhausted)
	require.Equal(t, 64, m.Len())
	require.Equal(t, MaxRegion, m.Limit())

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, int64(64), info.Size(), "backing file must not grow on a refused extend")
}

func TestMapped_Closed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.bin")
	m, err := OpenMapped(path, 0)
	require.NoError(t, err)

	_, err = m.Extend(64)
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close(), "double close is a no-op")

	_, err = m.Extend(64)
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, m.Sync(), ErrClosed)
}
