// internal/game/round.go
//
// Round state for a single secret word.
// Responsibilities:
//   - Start a round with an empty guess history.
//   - Validate and apply guesses (length, alphabetic).
//   - Track state transitions: playing → won/lost.
//
// Word-list membership is not checked here; see the session package.

package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Round holds the state of one in-progress or finished round.
type Round struct {
	ID      string
	secret  string
	guesses []Guess
	status  Status
}

// NewRound starts a round against secret (normalized to uppercase).
// The secret must itself be a well-formed guess.
func NewRound(secret string) (*Round, error) {
	s, err := ParseGuess(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSecret, secret, err)
	}
	return &Round{
		ID:      uuid.NewString(),
		secret:  s,
		guesses: make([]Guess, 0, Rows),
		status:  StatusInProgress,
	}, nil
}

// SubmitGuess scores guess and records it.
// Returns the per-letter marks, the resulting status, or an error.
//
// State transitions:
//   - All marks Correct → StatusWon.
//   - Else if this was guess number Rows → StatusLost.
func (r *Round) SubmitGuess(guess string) ([]Mark, Status, error) {
	if r.status.Terminal() {
		return nil, r.status, ErrRoundComplete
	}
	guess = strings.ToUpper(guess)
	if len(guess) != len(r.secret) {
		return nil, r.status, ErrInvalidGuessLength
	}
	if !isAlpha(guess) {
		return nil, r.status, ErrInvalidGuessCharacters
	}

	marks, err := Evaluate(r.secret, guess)
	if err != nil {
		return nil, r.status, err
	}
	r.guesses = append(r.guesses, Guess{Word: guess, Marks: marks})

	if AllCorrect(marks) {
		r.status = StatusWon
	} else if len(r.guesses) >= Rows {
		r.status = StatusLost
	}

	out := make([]Mark, len(marks))
	copy(out, marks)
	return out, r.status, nil
}

// Secret returns the uppercase secret word.
func (r *Round) Secret() string { return r.secret }

// Status reports the current state.
func (r *Round) Status() Status { return r.status }

// Finished reports whether the round has reached a terminal state.
func (r *Round) Finished() bool { return r.status.Terminal() }

// Won reports whether the round was won.
func (r *Round) Won() bool { return r.status == StatusWon }

// GuessesTaken is the number of guesses submitted so far.
func (r *Round) GuessesTaken() int { return len(r.guesses) }

// Guesses returns a copy of the guess history, oldest first.
func (r *Round) Guesses() []Guess {
	out := make([]Guess, len(r.guesses))
	for i, g := range r.guesses {
		marks := make([]Mark, len(g.Marks))
		copy(marks, g.Marks)
		out[i] = Guess{Word: g.Word, Marks: marks}
	}
	return out
}
