// internal/stats/store.go
//
// Persistence interface for ledgers, plus two simple implementations:
//   - MemoryStore: process-local, used for guests and tests.
//   - FileStore: the console game's human-readable stats file.
//
// File layout (one value per line, histogram on the last line):
//
//	<games played>
//	<games won>
//	<current streak>
//	<max streak>
//	<d1> <d2> <d3> <d4> <d5> <d6>

package stats

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/robalobadob/wordle/internal/game"
)

// Store defines how a single player's ledger is loaded and saved.
// Load returns an error wrapping fs.ErrNotExist when nothing was saved yet,
// and ErrMalformed when saved data cannot be trusted.
type Store interface {
	Load(ctx context.Context) (Ledger, error)
	Save(ctx context.Context, l Ledger) error
}

// MemoryStore keeps a ledger in memory. The zero value is empty.
type MemoryStore struct {
	mu     sync.RWMutex
	ledger *Ledger
}

// Load returns the saved ledger or fs.ErrNotExist.
func (m *MemoryStore) Load(ctx context.Context) (Ledger, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ledger == nil {
		return Ledger{}, fs.ErrNotExist
	}
	return *m.ledger, nil
}

// Save replaces the stored ledger.
func (m *MemoryStore) Save(ctx context.Context, l Ledger) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledger = &l
	return nil
}

// FileStore reads and writes the line-oriented stats file at Path.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore for path.
func NewFileStore(path string) *FileStore { return &FileStore{Path: path} }

// Load parses the stats file.
func (f *FileStore) Load(ctx context.Context) (Ledger, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return Ledger{}, err
	}
	defer fh.Close()

	var lines []string
	sc := bufio.NewScanner(fh)
	for sc.Scan() {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return Ledger{}, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return parseLedger(lines)
}

// Save writes the ledger, replacing the file atomically.
func (f *FileStore) Save(ctx context.Context, l Ledger) error {
	dir := filepath.Dir(f.Path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	tmp, err := os.CreateTemp(dir, ".stats-*")
	if err != nil {
		return err
	}
	if _, err := tmp.WriteString(formatLedger(l)); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", f.Path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", f.Path, err)
	}
	return nil
}

func formatLedger(l Ledger) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n%d\n%d\n%d\n", l.GamesPlayed, l.GamesWon, l.CurrentStreak, l.MaxStreak)
	for i, n := range l.Distribution {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(n))
	}
	b.WriteByte('\n')
	return b.String()
}

func parseLedger(lines []string) (Ledger, error) {
	if len(lines) < 5 {
		return Ledger{}, fmt.Errorf("%w: want 5 lines, got %d", ErrMalformed, len(lines))
	}
	var l Ledger
	for i, dst := range []*int{&l.GamesPlayed, &l.GamesWon, &l.CurrentStreak, &l.MaxStreak} {
		n, err := strconv.Atoi(lines[i])
		if err != nil {
			return Ledger{}, fmt.Errorf("%w: line %d: %v", ErrMalformed, i+1, err)
		}
		*dst = n
	}
	buckets := strings.Fields(lines[4])
	if len(buckets) != game.Rows {
		return Ledger{}, fmt.Errorf("%w: want %d distribution values, got %d", ErrMalformed, game.Rows, len(buckets))
	}
	for i, s := range buckets {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Ledger{}, fmt.Errorf("%w: distribution %d: %v", ErrMalformed, i+1, err)
		}
		l.Distribution[i] = n
	}
	if err := l.Validate(); err != nil {
		return Ledger{}, err
	}
	return l, nil
}

// isMissing reports whether err means "nothing saved yet".
func isMissing(err error) bool { return errors.Is(err, fs.ErrNotExist) }
