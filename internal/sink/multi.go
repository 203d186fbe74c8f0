package sink

import (
	"context"
	"errors"

	"github.com/jonesrussell/fightcrawl/internal/domain"
)

// Multi fans every record out to all of its sinks. A failure in one sink
// does not stop delivery to the others; the errors are joined.
type Multi struct {
	sinks []Sink
}

// NewMulti returns a fan-out over sinks. A single sink is returned as is.
func NewMulti(sinks ...Sink) Sink {
	if len(sinks) == 1 {
		return sinks[0]
	}
	return &Multi{sinks: sinks}
}

// WriteRanking writes r to every sink.
func (m *Multi) WriteRanking(ctx context.Context, r domain.Ranking) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.WriteRanking(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WriteFighter writes f to every sink.
func (m *Multi) WriteFighter(ctx context.Context, f domain.Fighter) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.WriteFighter(ctx, f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink.
func (m *Multi) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
