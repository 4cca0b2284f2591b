// internal/stats/sqlstore.go
//
// SQLite-backed ledgers for the HTTP server, one row per player in the
// stats_ledgers table (see internal/db/sql). The distribution is stored in the
// same space-separated form as the stats file.

package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/robalobadob/wordle/internal/game"
)

// SQLStore hands out per-player Stores over a shared *sql.DB.
type SQLStore struct{ db *sql.DB }

// NewSQLStore wraps db. The schema must already be migrated.
func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// For returns the Store for playerID.
func (s *SQLStore) For(playerID string) Store {
	return &playerStore{db: s.db, playerID: playerID}
}

type playerStore struct {
	db       *sql.DB
	playerID string
}

func (p *playerStore) Load(ctx context.Context) (Ledger, error) {
	var l Ledger
	var dist string
	err := p.db.QueryRowContext(ctx, `
        SELECT games_played, games_won, current_streak, max_streak, distribution
        FROM stats_ledgers WHERE player_id=?`, p.playerID,
	).Scan(&l.GamesPlayed, &l.GamesWon, &l.CurrentStreak, &l.MaxStreak, &dist)
	if errors.Is(err, sql.ErrNoRows) {
		return Ledger{}, fmt.Errorf("ledger %s: %w", p.playerID, fs.ErrNotExist)
	}
	if err != nil {
		return Ledger{}, err
	}
	fields := strings.Fields(dist)
	if len(fields) != game.Rows {
		return Ledger{}, fmt.Errorf("%w: distribution %q", ErrMalformed, dist)
	}
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Ledger{}, fmt.Errorf("%w: distribution %q", ErrMalformed, dist)
		}
		l.Distribution[i] = n
	}
	if err := l.Validate(); err != nil {
		return Ledger{}, err
	}
	return l, nil
}

func (p *playerStore) Save(ctx context.Context, l Ledger) error {
	dist := make([]string, len(l.Distribution))
	for i, n := range l.Distribution {
		dist[i] = strconv.Itoa(n)
	}
	_, err := p.db.ExecContext(ctx, `
        INSERT INTO stats_ledgers
            (player_id, games_played, games_won, current_streak, max_streak, distribution, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(player_id) DO UPDATE SET
            games_played=excluded.games_played,
            games_won=excluded.games_won,
            current_streak=excluded.current_streak,
            max_streak=excluded.max_streak,
            distribution=excluded.distribution,
            updated_at=excluded.updated_at`,
		p.playerID, l.GamesPlayed, l.GamesWon, l.CurrentStreak, l.MaxStreak,
		strings.Join(dist, " "), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}
