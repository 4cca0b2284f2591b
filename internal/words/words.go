// internal/words/words.go
//
// Provides word list management for the game.
//
// Responsibilities:
//   - Load answer and extra guess lists from files or fall back to embedded defaults.
//   - Maintain sets for quick lookups (answers only, answers∪extras).
//   - Supply the secret for a round (PickSecret) and the guess check (IsAccepted).
//
// Word Lists:
//   - "answers": canonical solutions (exactly 5 lowercase letters).
//   - "allowed": extra valid guesses (answers are always accepted too).
//
// Loading behavior (Load):
//  1. If both paths are set, load answers from the first and extras from the second.
//  2. If only the allowed path is set, use that file for both.
//  3. If neither is set, fall back to the embedded defaults.
//
// Constraints:
//   - Words must be 5 alphabetic letters (a–z); other lines are skipped.
//   - Lists are normalized to lowercase.

package words

import (
	"bufio"
	"crypto/rand"
	_ "embed"
	"errors"
	"io"
	"math/big"
	"os"
	"strings"
)

//go:embed default_small_answers.txt
var embeddedAnswers string

//go:embed default_small_allowed.txt
var embeddedAllowed string

// ErrNoAnswers is returned when the answers list ends up empty.
var ErrNoAnswers = errors.New("words: answers list is empty")

// Dictionary is an immutable, loaded pair of word lists. Safe for concurrent use.
type Dictionary struct {
	answers    []string            // canonical answers
	answersSet map[string]struct{} // answers only
	allowedSet map[string]struct{} // answers ∪ extras
}

// Load builds a Dictionary from the given files (see package doc for the cases).
func Load(answersPath, allowedPath string) (*Dictionary, error) {
	var ansList, allowList []string
	var err error

	switch {
	case answersPath != "" && allowedPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}

	case answersPath == "" && allowedPath != "":
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}
		ansList = allowList

	default:
		if ansList, err = normalizeLines(strings.NewReader(embeddedAnswers)); err != nil {
			return nil, err
		}
		if allowList, err = normalizeLines(strings.NewReader(embeddedAllowed)); err != nil {
			return nil, err
		}
	}
	return New(ansList, allowList)
}

// New builds a Dictionary from in-memory lists. Invalid words are dropped.
func New(answers, extras []string) (*Dictionary, error) {
	d := &Dictionary{
		answersSet: make(map[string]struct{}),
		allowedSet: make(map[string]struct{}),
	}
	for _, w := range answers {
		w = strings.ToLower(strings.TrimSpace(w))
		if !valid(w) {
			continue
		}
		if _, dup := d.answersSet[w]; dup {
			continue
		}
		d.answers = append(d.answers, w)
		d.answersSet[w] = struct{}{}
		d.allowedSet[w] = struct{}{}
	}
	for _, w := range extras {
		w = strings.ToLower(strings.TrimSpace(w))
		if valid(w) {
			d.allowedSet[w] = struct{}{}
		}
	}
	if len(d.answers) == 0 {
		return nil, ErrNoAnswers
	}
	return d, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return normalizeLines(f)
}

// normalizeLines keeps the valid lowercase 5-letter words of r, one per line.
func normalizeLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if valid(w) {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

func valid(w string) bool {
	if len(w) != 5 {
		return false
	}
	for _, r := range w {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// PickSecret returns a cryptographically random answer.
func (d *Dictionary) PickSecret() string {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(d.answers))))
	if err != nil {
		return d.answers[0]
	}
	return d.answers[nBig.Int64()]
}

// IsAccepted reports whether w is a valid guess (answers ∪ extras).
func (d *Dictionary) IsAccepted(w string) bool {
	_, ok := d.allowedSet[strings.ToLower(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (d *Dictionary) IsAnswer(w string) bool {
	_, ok := d.answersSet[strings.ToLower(w)]
	return ok
}

// Answer returns the i-th answer, wrapping around the list.
func (d *Dictionary) Answer(i int) string {
	n := len(d.answers)
	return d.answers[((i%n)+n)%n]
}

// Answers returns a copy of the answer list.
func (d *Dictionary) Answers() []string {
	return append([]string(nil), d.answers...)
}

// Counts returns counts of loaded words: (answers, accepted).
func (d *Dictionary) Counts() (answersCount int, acceptedCount int) {
	return len(d.answers), len(d.allowedSet)
}
