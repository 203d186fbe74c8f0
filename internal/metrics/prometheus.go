package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// MetricsNamespace is the namespace for all fightcrawl metrics.
	MetricsNamespace = "fightcrawl"
	// MetricsSubsystem is the subsystem for crawl metrics.
	MetricsSubsystem = "crawl"
)

// Run outcomes used as the status label of runs_total.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Exporter accumulates crawl summaries across scheduled runs.
type Exporter struct {
	RunsTotal           *prometheus.CounterVec
	PagesFetched        prometheus.Counter
	RankingsEmitted     prometheus.Counter
	FightersEmitted     prometheus.Counter
	RowsSkipped         prometheus.Counter
	RowErrors           prometheus.Counter
	TasksDropped        prometheus.Counter
	Retries             prometheus.Counter
	Errors              prometheus.Counter
	LastRunDuration     prometheus.Gauge
	LastSuccessUnixTime prometheus.Gauge
}

// NewExporter creates and registers the crawl metrics with reg. A nil reg
// uses the default registerer.
func NewExporter(reg prometheus.Registerer) *Exporter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Subsystem: MetricsSubsystem,
			Name:      name,
			Help:      help,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return factory.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Subsystem: MetricsSubsystem,
			Name:      name,
			Help:      help,
		})
	}

	return &Exporter{
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Subsystem: MetricsSubsystem,
			Name:      "runs_total",
			Help:      "Crawl runs by outcome",
		}, []string{"status"}),
		PagesFetched:        counter("pages_fetched_total", "Pages fetched successfully"),
		RankingsEmitted:     counter("rankings_emitted_total", "Ranking records written"),
		FightersEmitted:     counter("fighters_emitted_total", "Fighter records written"),
		RowsSkipped:         counter("rows_skipped_total", "Ranking rows skipped for a missing fighter link"),
		RowErrors:           counter("row_errors_total", "Ranking rows that failed to parse"),
		TasksDropped:        counter("tasks_dropped_total", "Requests abandoned after retries"),
		Retries:             counter("retries_total", "Requests retried after a transient failure"),
		Errors:              counter("errors_total", "Errors counted toward early abort"),
		LastRunDuration:     gauge("last_run_duration_seconds", "Wall time of the most recent run"),
		LastSuccessUnixTime: gauge("last_success_timestamp_seconds", "Completion time of the most recent successful run"),
	}
}

// Observe adds one finished run to the exported totals.
func (e *Exporter) Observe(s Summary, runErr error) {
	e.PagesFetched.Add(float64(s.PagesFetched))
	e.RankingsEmitted.Add(float64(s.RankingsEmitted))
	e.FightersEmitted.Add(float64(s.FightersEmitted))
	e.RowsSkipped.Add(float64(s.RowsSkipped))
	e.RowErrors.Add(float64(s.RowErrors))
	e.TasksDropped.Add(float64(s.TasksDropped))
	e.Retries.Add(float64(s.Retries))
	e.Errors.Add(float64(s.Errors))
	e.LastRunDuration.Set(s.Duration.Seconds())

	if runErr != nil {
		e.RunsTotal.WithLabelValues(StatusFailure).Inc()
		return
	}
	e.RunsTotal.WithLabelValues(StatusSuccess).Inc()
	e.LastSuccessUnixTime.Set(float64(s.StartTime.Add(s.Duration).Unix()))
}
