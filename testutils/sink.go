// Package testutils provides shared testing utilities across the application.
package testutils

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jonesrussell/fightcrawl/internal/domain"
)

// MockSink is a testify mock of sink.Sink.
type MockSink struct {
	mock.Mock
}

// NewMockSink creates a new mock sink.
func NewMockSink() *MockSink {
	return &MockSink{}
}

// WriteRanking records the call.
func (m *MockSink) WriteRanking(ctx context.Context, r domain.Ranking) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// WriteFighter records the call.
func (m *MockSink) WriteFighter(ctx context.Context, f domain.Fighter) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

// Close records the call.
func (m *MockSink) Close() error {
	args := m.Called()
	return args.Error(0)
}
