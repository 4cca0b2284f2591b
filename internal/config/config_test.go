package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	for _, k := range []string{"LOG_LEVEL", "PORT", "DATABASE_PATH", "JWT_EXPIRES_DAYS", "COOKIE_SECURE", "STATS_FILE", "SESSION_IDLE_TTL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	c, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, "data/wordle.db", c.DatabasePath)
	assert.Equal(t, 14*24*time.Hour, c.TokenTTL())
	assert.False(t, c.CookieSecure)
	assert.Equal(t, 2*time.Hour, c.SessionIdleTTL)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_EXPIRES_DAYS", "2")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("STATS_FILE", "/tmp/s.txt")
	t.Setenv("SESSION_IDLE_TTL", "15m")

	c, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, 48*time.Hour, c.TokenTTL())
	assert.True(t, c.CookieSecure)
	assert.Equal(t, 15*time.Minute, c.SessionIdleTTL)

	p, err := c.StatsPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/s.txt", p)
}

func TestParse_Invalid(t *testing.T) {
	t.Setenv("JWT_EXPIRES_DAYS", "soon")
	_, err := Parse()
	assert.Error(t, err)

	t.Setenv("JWT_EXPIRES_DAYS", "0")
	_, err = Parse()
	assert.Error(t, err)

	t.Setenv("JWT_EXPIRES_DAYS", "1")
	t.Setenv("SESSION_IDLE_TTL", "-1m")
	_, err = Parse()
	assert.Error(t, err)
}

func TestStatsPath_DefaultsUnderConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("AppData", dir)

	p, err := Config{}.StatsPath()
	require.NoError(t, err)
	assert.Equal(t, "stats.txt", filepath.Base(p))
	assert.Equal(t, "wordle", filepath.Base(filepath.Dir(p)))
}
