package stats

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/internal/db"
)

func TestSQLStore_PerPlayerLedgers(t *testing.T) {
	conn, err := db.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer conn.Close()
	ctx := context.Background()

	s := NewSQLStore(conn)
	alice, bob := s.For("alice"), s.For("bob")

	_, err = alice.Load(ctx)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, alice.Save(ctx, sampleLedger()))
	got, err := alice.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleLedger(), got)

	_, err = bob.Load(ctx)
	assert.ErrorIs(t, err, fs.ErrNotExist, "players are isolated")

	updated := sampleLedger()
	require.NoError(t, updated.RecordRound(false, 6))
	require.NoError(t, alice.Save(ctx, updated))
	got, err = alice.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestSQLStore_MalformedRowResetsThroughKeeper(t *testing.T) {
	conn, err := db.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer conn.Close()
	ctx := context.Background()

	_, err = conn.Exec(`INSERT INTO stats_ledgers (player_id, games_played, games_won, current_streak, max_streak, distribution, updated_at)
	                    VALUES ('carol', 1, 1, 1, 1, 'bogus', 'now')`)
	require.NoError(t, err)

	st := NewSQLStore(conn).For("carol")
	_, err = st.Load(ctx)
	assert.ErrorIs(t, err, ErrMalformed)

	k := Open(ctx, st)
	assert.True(t, k.Enabled())
	got, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Ledger{}, got)
}
