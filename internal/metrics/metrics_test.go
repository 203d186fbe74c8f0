package metrics_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/fightcrawl/internal/metrics"
)

func TestMetricsConcurrentIncrements(t *testing.T) {
	t.Parallel()

	m := metrics.NewMetrics()
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncrementPagesFetched()
			m.IncrementRankings()
			m.IncrementRankings()
			m.AddRowsSkipped(2)
		}()
	}
	wg.Wait()
	m.IncrementFighters()
	m.AddRowErrors(3)
	m.IncrementRetries()
	m.IncrementTasksDropped()
	m.IncrementErrors()

	s := m.Snapshot()
	assert.Equal(t, int64(50), s.PagesFetched)
	assert.Equal(t, int64(100), s.RankingsEmitted)
	assert.Equal(t, int64(100), s.RowsSkipped)
	assert.Equal(t, int64(1), s.FightersEmitted)
	assert.Equal(t, int64(3), s.RowErrors)
	assert.Equal(t, int64(1), s.Retries)
	assert.Equal(t, int64(1), s.TasksDropped)
	assert.Equal(t, int64(1), s.Errors)
	assert.Equal(t, m.GetStartTime(), s.StartTime)
}

func TestExporterObserve(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	exp := metrics.NewExporter(reg)

	exp.Observe(metrics.Summary{PagesFetched: 10, RankingsEmitted: 40, FightersEmitted: 30}, nil)
	exp.Observe(metrics.Summary{PagesFetched: 2, Errors: 1}, errors.New("too many errors"))

	assert.InDelta(t, 12, testutil.ToFloat64(exp.PagesFetched), 0)
	assert.InDelta(t, 40, testutil.ToFloat64(exp.RankingsEmitted), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(exp.Errors), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(exp.RunsTotal.WithLabelValues(metrics.StatusSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(exp.RunsTotal.WithLabelValues(metrics.StatusFailure)), 0)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "fightcrawl_crawl_pages_fetched_total")
	assert.Contains(t, names, "fightcrawl_crawl_runs_total")
}
