// internal/session/session.go
//
// A Session is one player's game context: the word source, the current round,
// the alphabet hint board and the statistics keeper.
//
// Flow per guess:
//
//	input → ParseGuess → word list check → Round.SubmitGuess → Alphabet.Record
//	      → (round over) Keeper.Record, exactly once per round
//
// Sessions are not safe for concurrent use. The HTTP server keeps one Session
// per game and serializes each player's guesses.

package session

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/stats"
)

// Source supplies secrets and validates guesses.
type Source interface {
	PickSecret() string
	IsAccepted(word string) bool
}

// ErrNoRound is returned by Guess before Start has been called.
var ErrNoRound = errors.New("session: no round started")

// Result is the outcome of one accepted guess.
type Result struct {
	Word   string      `json:"word"`
	Marks  []game.Mark `json:"marks"`
	Status game.Status `json:"state"`
}

// Session ties the game core to its collaborators.
type Session struct {
	Owner string // player identifier, empty for the console game

	words    Source
	keeper   *stats.Keeper
	round    *game.Round
	alphabet game.Alphabet
	recorded bool
}

// New creates a session. A nil keeper keeps stats in memory only.
func New(words Source, keeper *stats.Keeper) *Session {
	if keeper == nil {
		keeper = stats.Open(context.Background(), nil)
	}
	return &Session{words: words, keeper: keeper}
}

// Start begins a new round against secret, or a random answer when secret is
// empty, and clears the alphabet. A malformed secret leaves the session as
// it was and returns game.ErrInvalidSecret.
func (s *Session) Start(secret string) (*game.Round, error) {
	if secret == "" {
		secret = s.words.PickSecret()
	}
	r, err := game.NewRound(secret)
	if err != nil {
		return nil, err
	}
	s.round = r
	s.alphabet.Reset()
	s.recorded = false
	log.Debug().Str("round", r.ID).Str("owner", s.Owner).Msg("round started")
	return r, nil
}

// Guess validates raw input and applies it to the current round.
//
// Errors:
//   - game.ErrInvalidGuessLength / game.ErrInvalidGuessCharacters: malformed input.
//   - game.ErrUnknownWord: well-formed but not in the word list.
//   - game.ErrRoundComplete: the round is already over.
//   - ErrNoRound: Start was never called.
func (s *Session) Guess(ctx context.Context, input string) (Result, error) {
	if s.round == nil {
		return Result{}, ErrNoRound
	}
	if s.round.Finished() {
		return Result{Status: s.round.Status()}, game.ErrRoundComplete
	}
	guess, err := game.ParseGuess(input)
	if err != nil {
		return Result{Status: s.round.Status()}, err
	}
	if !s.words.IsAccepted(guess) {
		return Result{Status: s.round.Status()}, game.ErrUnknownWord
	}

	marks, status, err := s.round.SubmitGuess(guess)
	if err != nil {
		return Result{Status: status}, err
	}
	s.alphabet.Record(guess, marks)

	if status.Terminal() && !s.recorded {
		s.recorded = true
		if err := s.keeper.Record(ctx, status == game.StatusWon, s.round.GuessesTaken()); err != nil {
			log.Error().Err(err).Str("round", s.round.ID).Msg("record round")
		}
		log.Info().
			Str("round", s.round.ID).
			Str("owner", s.Owner).
			Str("state", status.String()).
			Int("guesses", s.round.GuessesTaken()).
			Msg("round finished")
	}
	return Result{Word: guess, Marks: marks, Status: status}, nil
}

// Round returns the current round (nil before Start).
func (s *Session) Round() *game.Round { return s.round }

// Alphabet returns the hint board for the current round.
func (s *Session) Alphabet() *game.Alphabet { return &s.alphabet }

// Stats returns a snapshot of the player's ledger.
func (s *Session) Stats() stats.Ledger { return s.keeper.Ledger() }

// ResetStats zeroes and persists the player's ledger.
func (s *Session) ResetStats(ctx context.Context) { s.keeper.Reset(ctx) }

// StatsEnabled reports whether statistics are being persisted.
func (s *Session) StatsEnabled() bool { return s.keeper.Enabled() }

// StatsErr is the persistence failure that disabled stats, if any.
func (s *Session) StatsErr() error { return s.keeper.Err() }
