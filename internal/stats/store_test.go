package stats

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLedger() Ledger {
	return Ledger{
		GamesPlayed:   7,
		GamesWon:      5,
		CurrentStreak: 2,
		MaxStreak:     3,
		Distribution:  [6]int{0, 1, 2, 1, 0, 1},
	}
}

func TestFileStore_SaveWritesLineLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.txt")
	fsStore := NewFileStore(path)

	require.NoError(t, fsStore.Save(context.Background(), sampleLedger()))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "7\n5\n2\n3\n0 1 2 1 0 1\n", string(b))

	got, err := fsStore.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleLedger(), got)
}

func TestFileStore_LoadsOriginalTrailingSpaceFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.txt")
	require.NoError(t, os.WriteFile(path, []byte("2\n1\n0\n1\n0 0 1 0 0 0 "), 0o644))

	got, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Ledger{GamesPlayed: 2, GamesWon: 1, MaxStreak: 1, Distribution: [6]int{0, 0, 1}}, got)
}

func TestFileStore_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "stats.txt")
	require.NoError(t, NewFileStore(path).Save(context.Background(), Ledger{}))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestFileStore_MissingFile(t *testing.T) {
	_, err := NewFileStore(filepath.Join(t.TempDir(), "nope.txt")).Load(context.Background())
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestFileStore_Malformed(t *testing.T) {
	tests := map[string]string{
		"empty":             "",
		"too few lines":     "1\n1\n1\n",
		"not a number":      "x\n0\n0\n0\n0 0 0 0 0 0\n",
		"short histogram":   "1\n1\n1\n1\n1 0 0\n",
		"bad bucket":        "1\n1\n1\n1\n1 0 0 0 0 z\n",
		"inconsistent":      "1\n5\n0\n0\n0 0 0 0 0 0\n",
		"histogram too big": "1\n1\n1\n1\n1 1 0 0 0 0\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "stats.txt")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, err := NewFileStore(path).Load(context.Background())
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestMemoryStore(t *testing.T) {
	var m MemoryStore
	_, err := m.Load(context.Background())
	assert.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, m.Save(context.Background(), sampleLedger()))
	got, err := m.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleLedger(), got)
}
