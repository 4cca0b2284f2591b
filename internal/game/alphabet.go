// internal/game/alphabet.go
//
// Alphabet tracks the best-known mark for each letter A–Z across all guesses
// of a round. It drives the on-screen keyboard hint.
//
// Priority order: Correct > Present > Absent > Unused. A letter never moves
// down that order: once shown Correct it stays Correct even if a later guess
// places the same letter in a non-matching slot.

package game

import "unicode"

// Alphabet is a per-round letter status board. The zero value is ready to use
// with every letter Unused.
type Alphabet struct {
	marks [26]Mark
}

// Update records m for letter unless that would be a downgrade.
// Non-letters are ignored.
func (a *Alphabet) Update(letter rune, m Mark) {
	i := letterIndex(letter)
	if i < 0 {
		return
	}
	if m.Outranks(a.marks[i]) {
		a.marks[i] = m
	}
}

// StatusOf returns the tracked mark for letter (Unused for non-letters).
func (a *Alphabet) StatusOf(letter rune) Mark {
	i := letterIndex(letter)
	if i < 0 {
		return MarkUnused
	}
	return a.marks[i]
}

// Record applies every (letter, mark) pair of one evaluated guess.
func (a *Alphabet) Record(guess string, marks []Mark) {
	for i, r := range []rune(guess) {
		if i >= len(marks) {
			return
		}
		a.Update(r, marks[i])
	}
}

// Reset restores all letters to Unused.
func (a *Alphabet) Reset() { a.marks = [26]Mark{} }

// Letters returns a snapshot keyed by uppercase letter, skipping Unused ones.
func (a *Alphabet) Letters() map[string]Mark {
	out := make(map[string]Mark)
	for i, m := range a.marks {
		if m != MarkUnused {
			out[string(rune('A'+i))] = m
		}
	}
	return out
}

func letterIndex(r rune) int {
	r = unicode.ToUpper(r)
	if r < 'A' || r > 'Z' {
		return -1
	}
	return int(r - 'A')
}
