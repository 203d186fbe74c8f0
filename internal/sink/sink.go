// Package sink writes crawl records to their destinations. Every Sink is
// safe for concurrent use by the crawl callbacks.
package sink

import (
	"context"
	"errors"

	"github.com/jonesrussell/fightcrawl/internal/domain"
)

// ErrClosed is returned by writes after Close.
var ErrClosed = errors.New("sink closed")

// Sink receives records as they are extracted.
type Sink interface {
	WriteRanking(ctx context.Context, r domain.Ranking) error
	WriteFighter(ctx context.Context, f domain.Fighter) error
	Close() error
}
