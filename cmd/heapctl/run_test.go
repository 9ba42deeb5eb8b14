package main

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statsScript = `# a reused, split and coalesced block
m a 100
m b 8
f a
m c 40
f c
f b
`

const fitScript = `m a 64
m s1 4
m b 16
m s2 4
m c 256
m s3 4
f a
f b
f c
m x 10
`

func TestRunCommand(t *testing.T) {
	tests := []struct {
		name           string
		script         string
		strategy       string
		limit          int
		wantErr        bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:   "stats script",
			script: statsScript,
			wantContain: []string{
				"Strategy:  first",
				"Ops:       6",
				"Peak live: 2",
				"Heap management statistics",
				"mallocs:    3",
				"coalesces:  2",
				"max heap:   148",
			},
		},
		{
			name:        "best fit",
			script:      fitScript,
			strategy:    "best",
			wantContain: []string{"Strategy:  best", "reuses:     1"},
		},
		{
			name:        "limit refuses allocations",
			script:      "m a 80\nm b 80\n",
			limit:       128,
			wantContain: []string{"Failed:    1", "grows:      1"},
		},
		{
			name:        "grouped numbers",
			script:      "m a 5000\n",
			wantContain: []string{"max heap:   5,020", "requested:  5,000"},
		},
		{
			name:        "huge request is refused, not fatal",
			script:      "m a 1125899906842624\nm b 8\n",
			wantContain: []string{"Failed:    1", "Ops:       2", "grows:      1"},
		},
		{
			name:    "unknown id",
			script:  "f nope\n",
			wantErr: true,
		},
		{
			name:    "syntax error",
			script:  "m a\n",
			wantErr: true,
		},
		{
			name:     "bad strategy",
			script:   statsScript,
			strategy: "random",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			replayStrategy = tt.strategy
			replayLimit = tt.limit
			path := writeTrace(t, tt.script)

			output, err := captureOutput(t, func() error {
				return runRun([]string{path})
			})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestRunCommand_JSON(t *testing.T) {
	resetFlags(t)
	jsonOut = true
	path := writeTrace(t, statsScript)

	output, err := captureOutput(t, func() error {
		return runRun([]string{path})
	})
	require.NoError(t, err)

	var got runOutput
	assertJSON(t, output, &got)
	assert.Equal(t, "first", got.Strategy)
	assert.Equal(t, 6, got.Result.Ops)
	assert.Equal(t, 3, got.Stats.Mallocs)
	assert.Equal(t, int64(148), got.Stats.HeapBytes)
}

func TestRunCommand_StrategyFromEnv(t *testing.T) {
	resetFlags(t)
	t.Setenv(envStrategy, "worst")
	path := writeTrace(t, fitScript)

	output, err := captureOutput(t, func() error {
		return runRun([]string{path})
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"Strategy:  worst"})
}

func TestRunCommand_FlagOverridesEnv(t *testing.T) {
	resetFlags(t)
	t.Setenv(envStrategy, "worst")
	replayStrategy = "next"
	path := writeTrace(t, fitScript)

	output, err := captureOutput(t, func() error {
		return runRun([]string{path})
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"Strategy:  next"})
}

func TestRunCommand_Quiet(t *testing.T) {
	resetFlags(t)
	quiet = true
	path := writeTrace(t, statsScript)

	output, err := captureOutput(t, func() error {
		return runRun([]string{path})
	})
	require.NoError(t, err)
	assert.Empty(t, output)
}

func TestRunCommand_Mapped(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("mapped heaps are exercised on unix")
	}
	resetFlags(t)
	replayMapped = filepath.Join(t.TempDir(), "heap.bin")
	path := writeTrace(t, statsScript)

	output, err := captureOutput(t, func() error {
		return runRun([]string{path})
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"max heap:   148"})
}

func TestRunCommand_MissingFile(t *testing.T) {
	resetFlags(t)
	_, err := captureOutput(t, func() error {
		return runRun([]string{filepath.Join(t.TempDir(), "absent.trace")})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open trace")
}

func TestPrintSessionJSON_ReportsCloseError(t *testing.T) {
	resetFlags(t)
	flushErr := errors.New("msync failed")
	closed := 0
	s := &session{close: func() error {
		closed++
		return flushErr
	}}

	output, err := captureOutput(t, func() error {
		return printSessionJSON(s, map[string]int{"ops": 1})
	})
	require.ErrorIs(t, err, flushErr)
	assert.Contains(t, output, `"ops": 1`)

	require.NoError(t, s.Close(), "second close is a no-op")
	assert.Equal(t, 1, closed)
}

func TestRunCommand_MappedJSON(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("mapped heaps are exercised on unix")
	}
	resetFlags(t)
	jsonOut = true
	replayMapped = filepath.Join(t.TempDir(), "heap.bin")
	path := writeTrace(t, statsScript)

	output, err := captureOutput(t, func() error {
		return runRun([]string{path})
	})
	require.NoError(t, err)

	var got runOutput
	assertJSON(t, output, &got)
	assert.Equal(t, int64(148), got.Stats.HeapBytes)
}
