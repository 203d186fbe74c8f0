package sink

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonesrussell/fightcrawl/internal/domain"
)

// File names written by JSONLines.
const (
	RankingsFile = "rankings.jsonl"
	FightersFile = "fighters.jsonl"
)

const filePerm = 0o644

// JSONLines appends one JSON object per line to rankings.jsonl and
// fighters.jsonl in a directory. Each record is on disk when its write returns.
type JSONLines struct {
	mu       sync.Mutex
	closed   bool
	files    []*os.File
	rankings *bufio.Writer
	fighters *bufio.Writer
}

// NewJSONLines opens (creating if needed) the record files in dir.
func NewJSONLines(dir string) (*JSONLines, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	open := func(name string) (*os.File, error) {
		f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePerm)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		return f, nil
	}

	rf, err := open(RankingsFile)
	if err != nil {
		return nil, err
	}
	ff, err := open(FightersFile)
	if err != nil {
		_ = rf.Close()
		return nil, err
	}

	return &JSONLines{
		files:    []*os.File{rf, ff},
		rankings: bufio.NewWriter(rf),
		fighters: bufio.NewWriter(ff),
	}, nil
}

// WriteRanking appends r to rankings.jsonl.
func (s *JSONLines) WriteRanking(_ context.Context, r domain.Ranking) error {
	return s.write(s.rankings, r)
}

// WriteFighter appends f to fighters.jsonl.
func (s *JSONLines) WriteFighter(_ context.Context, f domain.Fighter) error {
	return s.write(s.fighters, f)
}

func (s *JSONLines) write(w *bufio.Writer, v any) error {
	line, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, err = w.Write(line); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("flush record: %w", err)
	}
	return nil
}

// Close flushes and closes both files.
func (s *JSONLines) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	var firstErr error
	for _, w := range []*bufio.Writer{s.rankings, s.fighters} {
		if err := w.Flush(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("flush: %w", err)
		}
	}
	for _, f := range s.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close %s: %w", f.Name(), err)
		}
	}
	return firstErr
}
