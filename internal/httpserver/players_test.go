package httpserver

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/internal/stats"
)

func guess(c *client, id, word string) guessBody {
	c.t.Helper()
	var g guessBody
	require.Equal(c.t, http.StatusOK, c.do(http.MethodPost, "/game/guess", map[string]string{"gameId": id, "guess": word}, &g))
	return g
}

func myStats(c *client) statsBody {
	c.t.Helper()
	var st statsBody
	require.Equal(c.t, http.StatusOK, c.do(http.MethodGet, "/stats/me", nil, &st))
	return st
}

func TestLoginAgainMidGameKeepsEveryRound(t *testing.T) {
	e := newTestEnv(t)
	c := newClient(t, e.ts)

	myStats(c) // guest cookie
	creds := map[string]string{"username": "bob_1", "password": "correct horse"}
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/auth/signup", creds, nil))

	id := newGame(c, "crane")
	guess(c, id, "slate")
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/auth/login", creds, nil))
	assert.Equal(t, "won", guess(c, id, "crane").State)

	st := myStats(c)
	assert.Equal(t, 1, st.GamesPlayed)
	assert.Equal(t, 1, st.GamesWon)

	id = newGame(c, "crane")
	guess(c, id, "crane")
	st = myStats(c)
	assert.Equal(t, 2, st.GamesPlayed)
	assert.Equal(t, 2, st.GamesWon)

	var played int
	require.NoError(t, e.db.QueryRow(`SELECT games_played FROM stats_ledgers`).Scan(&played))
	assert.Equal(t, 2, played)
	assert.Equal(t, 1, e.ledgerRows(t))
}

func TestClaimReloadsLiveUserKeeper(t *testing.T) {
	e := newTestEnv(t)
	c := newClient(t, e.ts)
	creds := map[string]string{"username": "dana_1", "password": "correct horse"}
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/auth/signup", creds, nil))
	userGame := newGame(c, "crane")

	// Win a round as a guest while the account's game is still open.
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/auth/logout", nil, nil))
	guestGame := newGame(c, "crane")
	guess(c, guestGame, "crane")
	require.Equal(t, 1, e.ledgerRows(t))

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/auth/login", creds, nil))
	assert.Equal(t, 1, myStats(c).GamesWon, "guest ledger claimed")

	assert.Equal(t, "won", guess(c, userGame, "crane").State)
	st := myStats(c)
	assert.Equal(t, 2, st.GamesPlayed)
	assert.Equal(t, 2, st.GamesWon)
	assert.Equal(t, 2, st.CurrentStreak)
	assert.Equal(t, 1, e.ledgerRows(t))

	// The guest's finished game went with its ledger.
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/auth/logout", nil, nil))
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPost, "/game/guess", map[string]string{"gameId": guestGame, "guess": "crane"}, nil))
	assert.Equal(t, 0, myStats(c).GamesPlayed)
}

func TestCookielessReadsLeaveNoTrace(t *testing.T) {
	e := newTestEnv(t)
	for i := 0; i < 50; i++ {
		c := &client{t: t, base: e.ts.URL, http: &http.Client{}}
		st := myStats(c)
		assert.True(t, st.Enabled)
		assert.Equal(t, 0, st.GamesPlayed)
	}
	assert.Equal(t, 0, e.ledgerRows(t))
	assert.Equal(t, 0, e.srv.players.count())
}

func TestOpeningAGameWritesNoLedger(t *testing.T) {
	e := newTestEnv(t)
	c := newClient(t, e.ts)
	id := newGame(c, "crane")
	guess(c, id, "slate")
	assert.Equal(t, 0, e.ledgerRows(t))

	guess(c, id, "crane")
	assert.Equal(t, 1, e.ledgerRows(t))
}

func TestSweepDropsIdleState(t *testing.T) {
	e := newTestEnv(t)
	c := newClient(t, e.ts)
	id := newGame(c, "crane")

	var n struct {
		GameID string `json:"gameId"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/daily/new", nil, &n))

	e.srv.sweep(time.Now())
	assert.Equal(t, 1, e.srv.players.count(), "recent players stay")
	assert.Equal(t, 1, e.srv.store.Len())

	e.srv.sweep(time.Now().Add(3 * time.Hour))
	assert.Equal(t, 0, e.srv.players.count())
	assert.Equal(t, 0, e.srv.store.Len())
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPost, "/game/guess", map[string]string{"gameId": id, "guess": "crane"}, nil))
	assert.Equal(t, http.StatusConflict, c.do(http.MethodPost, "/daily/guess", map[string]string{"gameId": n.GameID, "word": "crane"}, nil))
}

func TestPlayersSweepSkipsBusyPlayers(t *testing.T) {
	e := newTestEnv(t)
	ps := newPlayers(stats.NewSQLStore(e.db))
	base := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	ps.now = func() time.Time { return base }

	busy := ps.get(context.Background(), "anon:busy")
	busy.current = "g1"
	idle := ps.get(context.Background(), "anon:idle")
	idle.current = "g2"

	busy.mu.Lock()
	games := ps.sweep(base.Add(time.Minute))
	busy.mu.Unlock()

	assert.Equal(t, []string{"g2"}, games)
	assert.Same(t, busy, ps.peek("anon:busy"))
	assert.Nil(t, ps.peek("anon:idle"))
}

func TestDailyInsertFailureFreesTheDay(t *testing.T) {
	e := newTestEnv(t)
	c := newClient(t, e.ts)

	var n struct {
		GameID string `json:"gameId"`
		Played bool   `json:"played"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/daily/new", nil, &n))
	first := n.GameID

	_, err := e.db.Exec(`ALTER TABLE daily_results RENAME TO daily_results_off`)
	require.NoError(t, err)
	var g guessBody
	assert.Equal(t, http.StatusInternalServerError, c.do(http.MethodPost, "/daily/guess", map[string]string{"gameId": first, "word": "crane"}, &g))
	assert.Equal(t, "storage", g.Error)
	_, err = e.db.Exec(`ALTER TABLE daily_results_off RENAME TO daily_results`)
	require.NoError(t, err)

	assert.Equal(t, http.StatusConflict, c.do(http.MethodPost, "/daily/guess", map[string]string{"gameId": first, "word": "crane"}, nil))

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/daily/new", nil, &n))
	assert.False(t, n.Played)
	require.NotEqual(t, first, n.GameID)

	g = guessBody{}
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/daily/guess", map[string]string{"gameId": n.GameID, "word": "crane"}, &g))
	assert.Equal(t, "won", g.State)

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/daily/new", nil, &n))
	assert.True(t, n.Played)
}
