package db

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesSchema(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "data", "app.db"))
	require.NoError(t, err)
	defer conn.Close()

	for _, table := range []string{"users", "stats_ledgers", "daily_results", "_migrations"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer conn.Close()

	extra := fstest.MapFS{
		"002_notes.sql": {Data: []byte(`CREATE TABLE notes (id INTEGER PRIMARY KEY);`)},
	}
	require.NoError(t, Migrate(conn, extra))
	// A second run must skip 002 instead of failing on CREATE TABLE.
	require.NoError(t, Migrate(conn, extra))
	require.NoError(t, Migrate(conn, migrations))

	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestMigrate_FailureRollsBack(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer conn.Close()

	bad := fstest.MapFS{"003_bad.sql": {Data: []byte(`CREATE TABLE ok (id INTEGER); NOT SQL;`)}}
	assert.Error(t, Migrate(conn, bad))

	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM _migrations WHERE name='003_bad.sql'`).Scan(&n))
	assert.Equal(t, 0, n)
}
