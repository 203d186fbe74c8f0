package sink

import (
	"context"
	"sync"

	"github.com/jonesrussell/fightcrawl/internal/domain"
)

// Memory keeps records in process. Used for dry runs and tests.
type Memory struct {
	mu       sync.Mutex
	rankings []domain.Ranking
	fighters []domain.Fighter
}

// NewMemory creates an empty Memory sink.
func NewMemory() *Memory {
	return &Memory{}
}

// WriteRanking records r.
func (m *Memory) WriteRanking(_ context.Context, r domain.Ranking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rankings = append(m.rankings, r)
	return nil
}

// WriteFighter records f.
func (m *Memory) WriteFighter(_ context.Context, f domain.Fighter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fighters = append(m.fighters, f)
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// Rankings returns a copy of the recorded rankings in write order.
func (m *Memory) Rankings() []domain.Ranking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Ranking(nil), m.rankings...)
}

// Fighters returns a copy of the recorded fighters in write order.
func (m *Memory) Fighters() []domain.Fighter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Fighter(nil), m.fighters...)
}
