// internal/stats/ledger.go
//
// Cumulative player statistics.
// Responsibilities:
//   - Tally games played/won, current and max streak.
//   - Keep the guess distribution (wins by guess number 1..6).
//   - Derive the win percentage.
//
// A Ledger is a plain value: persisting it is the job of a Store, and the
// Keeper decides what happens when persistence fails.

package stats

import (
	"errors"
	"fmt"
	"math"

	"github.com/robalobadob/wordle/internal/game"
)

var (
	ErrGuessesOutOfRange = errors.New("stats: guesses taken out of range")
	ErrMalformed         = errors.New("stats: malformed data")
)

// Ledger holds cumulative statistics for one player.
type Ledger struct {
	GamesPlayed   int            `json:"gamesPlayed"`
	GamesWon      int            `json:"gamesWon"`
	CurrentStreak int            `json:"currentStreak"`
	MaxStreak     int            `json:"maxStreak"`
	Distribution  [game.Rows]int `json:"distribution"` // Distribution[n-1] = wins on guess n
}

// RecordRound folds one completed round into the ledger.
// A win must carry guessesTaken in 1..game.Rows; otherwise nothing changes.
func (l *Ledger) RecordRound(won bool, guessesTaken int) error {
	if won && (guessesTaken < 1 || guessesTaken > game.Rows) {
		return fmt.Errorf("%w: %d", ErrGuessesOutOfRange, guessesTaken)
	}
	l.GamesPlayed++
	if !won {
		l.CurrentStreak = 0
		return nil
	}
	l.GamesWon++
	l.CurrentStreak++
	if l.CurrentStreak > l.MaxStreak {
		l.MaxStreak = l.CurrentStreak
	}
	l.Distribution[guessesTaken-1]++
	return nil
}

// WinPercentage returns GamesWon/GamesPlayed*100 rounded to two decimals,
// or 0 when no games have been played.
func (l Ledger) WinPercentage() float64 {
	if l.GamesPlayed == 0 {
		return 0
	}
	pct := float64(l.GamesWon) / float64(l.GamesPlayed) * 100
	return math.Round(pct*100) / 100
}

// Reset zeroes every counter, including the distribution.
func (l *Ledger) Reset() { *l = Ledger{} }

// Validate reports ErrMalformed for a ledger no sequence of rounds could produce.
func (l Ledger) Validate() error {
	if l.GamesPlayed < 0 || l.GamesWon < 0 || l.CurrentStreak < 0 || l.MaxStreak < 0 {
		return fmt.Errorf("%w: negative counter", ErrMalformed)
	}
	if l.GamesWon > l.GamesPlayed {
		return fmt.Errorf("%w: won %d > played %d", ErrMalformed, l.GamesWon, l.GamesPlayed)
	}
	if l.CurrentStreak > l.MaxStreak || l.MaxStreak > l.GamesWon {
		return fmt.Errorf("%w: inconsistent streaks", ErrMalformed)
	}
	sum := 0
	for _, n := range l.Distribution {
		if n < 0 {
			return fmt.Errorf("%w: negative distribution bucket", ErrMalformed)
		}
		sum += n
	}
	if sum != l.GamesWon {
		return fmt.Errorf("%w: distribution sums to %d, won %d", ErrMalformed, sum, l.GamesWon)
	}
	return nil
}
