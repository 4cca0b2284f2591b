// internal/httpserver/players.go
//
// In-memory state per owner (user ID or anonymous ID).
// Responsibilities:
//   - One stats keeper per owner, opened lazily so reads create no rows.
//   - A per-owner mutex that serializes that owner's guesses and ledger writes.
//   - The owner's live classic game, so a new game replaces the old one.
//   - Dropping owners that have been idle for too long.
//
// An owner's entry and its live game leave memory together; a session never
// outlives the keeper it records into.

package httpserver

import (
	"context"
	"sync"
	"time"

	"github.com/robalobadob/wordle/internal/stats"
)

// player is the server-side state shared by all requests of one owner.
// mu guards keeper and current.
type player struct {
	mu       sync.Mutex
	keeper   *stats.Keeper
	current  string    // ID of the owner's live classic game
	lastSeen time.Time // guarded by players.mu
}

// players is the owner cache.
type players struct {
	mu    sync.Mutex
	store *stats.SQLStore
	m     map[string]*player
	now   func() time.Time
}

func newPlayers(st *stats.SQLStore) *players {
	return &players{store: st, m: make(map[string]*player), now: time.Now}
}

// get returns the owner's player, loading their ledger on first use.
func (ps *players) get(ctx context.Context, owner string) *player {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	p, ok := ps.m[owner]
	if !ok {
		p = &player{keeper: stats.Open(ctx, ps.store.For(owner), stats.Lazy())}
		ps.m[owner] = p
	}
	p.lastSeen = ps.now()
	return p
}

// peek returns the cached player or nil, without creating one.
func (ps *players) peek(owner string) *player {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.m[owner]
}

// ledger returns the owner's statistics without caching anything.
func (ps *players) ledger(ctx context.Context, owner string) (stats.Ledger, bool) {
	if p := ps.peek(owner); p != nil {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.keeper.Ledger(), p.keeper.Enabled()
	}
	k := stats.Open(ctx, ps.store.For(owner), stats.Lazy())
	return k.Ledger(), k.Enabled()
}

// forget drops owner and returns the ID of its live game, if any.
// The caller must hold the player's mu or know it is unused.
func (ps *players) forget(owner string) string {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	p, ok := ps.m[owner]
	if !ok {
		return ""
	}
	delete(ps.m, owner)
	return p.current
}

// sweep drops players not seen since cutoff and returns their live game IDs.
// A player whose mutex is held is in use and stays.
func (ps *players) sweep(cutoff time.Time) []string {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	var games []string
	for owner, p := range ps.m {
		if !p.lastSeen.Before(cutoff) || !p.mu.TryLock() {
			continue
		}
		if p.current != "" {
			games = append(games, p.current)
		}
		delete(ps.m, owner)
		p.mu.Unlock()
	}
	return games
}

// count reports how many owners are cached.
func (ps *players) count() int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return len(ps.m)
}
