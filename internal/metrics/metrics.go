// Package metrics provides crawl counters and their Prometheus export.
package metrics

import (
	"sync/atomic"
	"time"
)

// Metrics holds the counters of one crawl run. All methods are safe for
// concurrent use.
type Metrics struct {
	startTime time.Time

	pagesFetched    atomic.Int64
	rankingsEmitted atomic.Int64
	fightersEmitted atomic.Int64
	rowsSkipped     atomic.Int64
	rowErrors       atomic.Int64
	tasksDropped    atomic.Int64
	retries         atomic.Int64
	errors          atomic.Int64
}

// Summary is a point-in-time copy of Metrics.
type Summary struct {
	StartTime       time.Time
	Duration        time.Duration
	PagesFetched    int64
	RankingsEmitted int64
	FightersEmitted int64
	RowsSkipped     int64
	RowErrors       int64
	TasksDropped    int64
	Retries         int64
	Errors          int64
}

// NewMetrics creates a new Metrics instance starting now.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// GetStartTime returns the time when metrics collection began.
func (m *Metrics) GetStartTime() time.Time {
	return m.startTime
}

// IncrementPagesFetched counts a successfully fetched page.
func (m *Metrics) IncrementPagesFetched() { m.pagesFetched.Add(1) }

// IncrementRankings counts an emitted ranking record.
func (m *Metrics) IncrementRankings() { m.rankingsEmitted.Add(1) }

// IncrementFighters counts an emitted fighter record.
func (m *Metrics) IncrementFighters() { m.fightersEmitted.Add(1) }

// AddRowsSkipped counts ranking rows without a usable fighter link.
func (m *Metrics) AddRowsSkipped(n int) { m.rowsSkipped.Add(int64(n)) }

// AddRowErrors counts ranking rows that failed to parse.
func (m *Metrics) AddRowErrors(n int) { m.rowErrors.Add(int64(n)) }

// IncrementTasksDropped counts a request abandoned after its retries.
func (m *Metrics) IncrementTasksDropped() { m.tasksDropped.Add(1) }

// IncrementRetries counts a retried request.
func (m *Metrics) IncrementRetries() { m.retries.Add(1) }

// IncrementErrors counts an error that is eligible for early abort.
func (m *Metrics) IncrementErrors() { m.errors.Add(1) }

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() Summary {
	return Summary{
		StartTime:       m.startTime,
		Duration:        time.Since(m.startTime),
		PagesFetched:    m.pagesFetched.Load(),
		RankingsEmitted: m.rankingsEmitted.Load(),
		FightersEmitted: m.fightersEmitted.Load(),
		RowsSkipped:     m.rowsSkipped.Load(),
		RowErrors:       m.rowErrors.Load(),
		TasksDropped:    m.tasksDropped.Load(),
		Retries:         m.retries.Load(),
		Errors:          m.errors.Load(),
	}
}
