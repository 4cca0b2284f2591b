package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestStatsCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.txt")
	require.NoError(t, os.WriteFile(path, []byte("7\n5\n2\n3\n0 1 2 1 0 1\n"), 0o644))
	t.Setenv("STATS_FILE", path)
	t.Setenv("LOG_LEVEL", "error")

	out, err := run(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Played\t7")
	assert.Contains(t, out, "Win %\t71.43")
	assert.Contains(t, out, "Max Streak\t3")
	assert.Contains(t, out, "3 : 2")

	out, err = run(t, "stats", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Statistics reset.")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0\n0\n0\n0\n0 0 0 0 0 0\n", string(b))

	out, err = run(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Win %\t0")
}

func TestStatsCommand_MissingFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "stats.txt")
	t.Setenv("STATS_FILE", path)
	t.Setenv("LOG_LEVEL", "error")

	out, err := run(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Played\t0")
	assert.FileExists(t, path)
}

func TestRootCmd_BadConfig(t *testing.T) {
	t.Setenv("JWT_EXPIRES_DAYS", "-1")
	_, err := run(t, "stats")
	assert.Error(t, err)
}

func TestRootCmd_Commands(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"play", "stats", "serve"} {
		c, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}
	serve, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)
	assert.NotNil(t, serve.Flags().Lookup("port"))
	play, _, err := cmd.Find([]string{"play"})
	require.NoError(t, err)
	assert.NotNil(t, play.Flags().Lookup("daily"))
}
