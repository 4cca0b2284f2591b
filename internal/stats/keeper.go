// internal/stats/keeper.go
//
// Keeper owns a player's Ledger together with the Store it is persisted to.
//
// Failure handling:
//   - Nothing saved yet  → start fresh and save.
//   - Malformed data     → reset and save.
//   - Any other failure  → stats are disabled for the rest of the session:
//     the ledger keeps counting in memory but is never saved again, and
//     Enabled() reports false so the UI can mark stats unavailable.
//
// Persistence problems never reach the caller as errors; play continues.

package stats

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
)

// Keeper is not safe for concurrent use; each session owns its own.
type Keeper struct {
	store  Store
	ledger Ledger
	err    error // non-nil once persistence is disabled
	lazy   bool  // don't write a fresh ledger until something is recorded
}

// Option customizes a Keeper.
type Option func(*Keeper)

// Lazy leaves a missing ledger unsaved until the first Record or Reset.
// Servers use it so that merely looking at a player creates no rows.
func Lazy() Option {
	return func(k *Keeper) { k.lazy = true }
}

// Open loads the ledger from store. A nil store gives an in-memory keeper
// that stays enabled.
func Open(ctx context.Context, store Store, opts ...Option) *Keeper {
	k := &Keeper{store: store}
	for _, o := range opts {
		o(k)
	}
	k.load(ctx)
	return k
}

// Reload discards the in-memory ledger and reads the store again, applying
// the same rules as Open. A disabled keeper gets another chance.
func (k *Keeper) Reload(ctx context.Context) {
	k.ledger = Ledger{}
	k.err = nil
	k.load(ctx)
}

func (k *Keeper) load(ctx context.Context) {
	if k.store == nil {
		return
	}
	l, err := k.store.Load(ctx)
	switch {
	case err == nil:
		k.ledger = l
	case isMissing(err):
		if !k.lazy {
			k.save(ctx)
		}
	case errors.Is(err, ErrMalformed):
		log.Warn().Err(err).Msg("stats malformed, resetting")
		k.save(ctx)
	default:
		k.disable(err)
	}
}

// Disabled returns an in-memory keeper that reports err as the reason stats
// are unavailable, for when no store could even be set up.
func Disabled(err error) *Keeper {
	k := &Keeper{}
	k.disable(err)
	return k
}

// Record folds a finished round into the ledger and persists it.
// Only ErrGuessesOutOfRange is returned.
func (k *Keeper) Record(ctx context.Context, won bool, guessesTaken int) error {
	if err := k.ledger.RecordRound(won, guessesTaken); err != nil {
		return err
	}
	k.save(ctx)
	return nil
}

// Reset zeroes the ledger and persists it.
func (k *Keeper) Reset(ctx context.Context) {
	k.ledger.Reset()
	k.save(ctx)
}

// Ledger returns a copy of the current statistics.
func (k *Keeper) Ledger() Ledger { return k.ledger }

// Enabled reports whether statistics are still being persisted.
func (k *Keeper) Enabled() bool { return k.err == nil }

// Err returns the failure that disabled persistence, if any.
func (k *Keeper) Err() error { return k.err }

func (k *Keeper) save(ctx context.Context) {
	if k.store == nil || k.err != nil {
		return
	}
	if err := k.store.Save(ctx, k.ledger); err != nil {
		k.disable(err)
	}
}

func (k *Keeper) disable(err error) {
	k.err = err
	log.Warn().Err(err).Msg("stats disabled for this session")
}
