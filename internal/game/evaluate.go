// internal/game/evaluate.go
//
// Guess evaluation.
//
// Evaluate implements the standard two‑pass scoring algorithm:
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count remaining (non‑Correct) secret letters by letter index.
//
// Pass 2 (left to right):
//   - For each non‑Correct guess letter: if there is remaining count for that
//     letter, mark Present and decrement the count; otherwise mark Absent.
//
// Correct marks are granted before any Present, and among repeated guess letters
// the leftmost non‑exact occurrence receives the Present. For any letter the
// number of Correct plus Present marks never exceeds its count in the secret.

package game

import "strings"

// Evaluate scores guess against secret. Letters compare case-insensitively.
// The only failure is a length mismatch.
func Evaluate(secret, guess string) ([]Mark, error) {
	if len(secret) != len(guess) {
		return nil, ErrInvalidGuessLength
	}
	n := len(guess)
	res := make([]Mark, n)

	// Letter frequency for the non‑Correct positions (A–Z).
	var counts [26]int

	for i := 0; i < n; i++ {
		s, g := upper(secret[i]), upper(guess[i])
		if s == g {
			res[i] = MarkCorrect
		} else if j := idx(s); j >= 0 {
			counts[j]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkCorrect {
			continue
		}
		if j := idx(upper(guess[i])); j >= 0 && counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		} else {
			res[i] = MarkAbsent
		}
	}
	return res, nil
}

// AllCorrect reports whether every mark is Correct.
func AllCorrect(marks []Mark) bool {
	if len(marks) == 0 {
		return false
	}
	for _, m := range marks {
		if m != MarkCorrect {
			return false
		}
	}
	return true
}

// ParseGuess normalizes raw player input into an uppercase guess.
// It fails with ErrInvalidGuessLength or ErrInvalidGuessCharacters.
func ParseGuess(input string) (string, error) {
	g := strings.ToUpper(strings.TrimSpace(input))
	if len(g) != Cols {
		return "", ErrInvalidGuessLength
	}
	if !isAlpha(g) {
		return "", ErrInvalidGuessCharacters
	}
	return g, nil
}

// idx maps an uppercase ASCII letter to 0..25, or -1.
func idx(b byte) int {
	if b < 'A' || b > 'Z' {
		return -1
	}
	return int(b - 'A')
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

// isAlpha checks that a string consists only of ASCII letters.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if idx(upper(s[i])) < 0 {
			return false
		}
	}
	return true
}
