// internal/daily/daily.go
//
// Word of the day.
// Every player sees the same answer on a given UTC date. The answer's position
// is HMAC-SHA256(salt, date) reduced modulo the list length, so the order
// cannot be read off the answer list alone.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// Answers is the part of a dictionary a Schedule draws from.
type Answers interface {
	Counts() (answers, accepted int)
	Answer(i int) string
}

// Day is the scheduled word for one date.
type Day struct {
	Date  string // YYYY-MM-DD, UTC
	Index int    // position in the answer list
	Word  string
}

// Schedule assigns an answer to every date.
type Schedule struct {
	salt  []byte
	words Answers
}

// NewSchedule returns the schedule for words under salt.
func NewSchedule(salt string, words Answers) *Schedule {
	return &Schedule{salt: []byte(salt), words: words}
}

// On returns the word for t's UTC date.
func (s *Schedule) On(t time.Time) Day {
	date := DateKey(t)
	n, _ := s.words.Counts()
	i := index(s.salt, date, n)
	return Day{Date: date, Index: i, Word: s.words.Answer(i)}
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// index maps date into [0, n); 0 when n is not positive.
func index(salt []byte, date string, n int) int {
	if n <= 0 {
		return 0
	}
	mac := hmac.New(sha256.New, salt)
	mac.Write([]byte(date))
	return int(binary.BigEndian.Uint64(mac.Sum(nil)[:8]) % uint64(n))
}
