// internal/game/types.go
//
// Core type definitions for the Wordle game engine.
// Defines:
//   - Mark: per-letter feedback for a guess (absent/present/correct), plus the
//     Unused sentinel used by the alphabet tracker.
//   - Status: lifecycle of a round (playing → won/lost).
//   - Guess: one recorded guess and its evaluation.
//   - Sentinel errors returned by the engine.

package game

import (
	"errors"
	"fmt"
)

const (
	Rows = 6 // maximum number of guesses in a round
	Cols = 5 // letters per word
)

// Mark represents the evaluation result for a single letter.
// The numeric order is the display priority: a higher Mark always wins.
type Mark uint8

const (
	MarkUnused  Mark = iota // letter not guessed yet (alphabet only)
	MarkAbsent              // letter contributes nothing beyond what is already accounted for
	MarkPresent             // letter is in the secret, but not at this position
	MarkCorrect             // letter matches the secret at this position
)

var markNames = [...]string{
	MarkUnused:  "unused",
	MarkAbsent:  "absent",
	MarkPresent: "present",
	MarkCorrect: "correct",
}

func (m Mark) String() string {
	if int(m) < len(markNames) {
		return markNames[m]
	}
	return fmt.Sprintf("Mark(%d)", uint8(m))
}

// Outranks reports whether m has strictly higher display priority than o.
func (m Mark) Outranks(o Mark) bool { return m > o }

// MarshalText encodes a Mark as its lowercase name (used by JSON responses).
func (m Mark) MarshalText() ([]byte, error) {
	if int(m) >= len(markNames) {
		return nil, fmt.Errorf("game: invalid mark %d", uint8(m))
	}
	return []byte(markNames[m]), nil
}

// UnmarshalText is the inverse of MarshalText.
func (m *Mark) UnmarshalText(b []byte) error {
	for i, name := range markNames {
		if name == string(b) {
			*m = Mark(i)
			return nil
		}
	}
	return fmt.Errorf("game: unknown mark %q", b)
}

// Status is the coarse state of a round.
type Status uint8

const (
	StatusInProgress Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "playing"
	}
}

// MarshalText encodes a Status as "playing", "won" or "lost".
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Terminal reports whether no more guesses are accepted.
func (s Status) Terminal() bool { return s == StatusWon || s == StatusLost }

// Guess is an immutable record of one submitted word and its marks.
type Guess struct {
	Word  string `json:"word"`
	Marks []Mark `json:"marks"`
}

var (
	ErrInvalidGuessLength     = errors.New("guess must be exactly 5 letters")
	ErrInvalidGuessCharacters = errors.New("guess must contain letters only")
	ErrUnknownWord            = errors.New("not in word list")
	ErrRoundComplete          = errors.New("round already complete")
	ErrInvalidSecret          = errors.New("secret must be a five-letter word")
)
