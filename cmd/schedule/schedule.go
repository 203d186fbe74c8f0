// Package schedule implements the schedule command, which runs crawls on a
// cron schedule and serves health and Prometheus metrics over HTTP.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdcommon "github.com/jonesrussell/fightcrawl/cmd/common"
	"github.com/jonesrussell/fightcrawl/internal/crawler"
	"github.com/jonesrussell/fightcrawl/internal/domain"
	"github.com/jonesrussell/fightcrawl/internal/metrics"
	"github.com/jonesrussell/fightcrawl/internal/scheduler"
	"github.com/jonesrussell/fightcrawl/internal/server"
	"github.com/jonesrussell/fightcrawl/internal/sink"
)

// shutdownTimeout bounds the HTTP server shutdown.
const shutdownTimeout = 10 * time.Second

type options struct {
	cron        string
	scrapeType  string
	metricsAddr string
	runNow      bool
}

// Command returns the schedule command. version is reported on /health.
func Command(version string) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run crawls on a cron schedule",
		Long: `Run FightMatrix crawls on a cron schedule until interrupted.

The schedule uses the standard five-field cron format or a descriptor such as
@daily. A run that is still in flight when the next one is due is skipped.
Unless --metrics-addr is empty, /health and /metrics are served on that address.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := domain.ParseScrapeType(opts.scrapeType)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, version)
		},
	}

	cmd.Flags().StringVar(&opts.cron, "cron", "", `cron expression, e.g. "0 6 * * 1" or "@daily"`)
	cmd.Flags().StringVar(&opts.scrapeType, "scrape-type", string(domain.ScrapeMostRecent), "snapshots to crawl: most_recent or all")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", ":9090", "address for /health and /metrics; empty disables the server")
	cmd.Flags().BoolVar(&opts.runNow, "run-now", false, "run one crawl immediately before waiting for the schedule")
	_ = cmd.MarkFlagRequired("cron")

	return cmd
}

func run(ctx context.Context, opts options, version string) error {
	scrapeType, err := domain.ParseScrapeType(opts.scrapeType)
	if err != nil {
		return err
	}

	deps, err := cmdcommon.NewCommandDeps(viper.GetViper())
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() { _ = deps.Logger.Sync() }()
	log := deps.Logger

	out, err := cmdcommon.CreateSink(ctx, deps.Config, log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil {
			log.Error("Failed to close sink", "error", closeErr)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	exporter := metrics.NewExporter(reg)

	runCrawl := newRunFunc(deps, out, exporter, scrapeType)
	sched := scheduler.New(log, runCrawl)
	if scheduleErr := sched.Schedule(opts.cron); scheduleErr != nil {
		return scheduleErr
	}

	var (
		srv      *server.Server
		serveErr <-chan error
	)
	if opts.metricsAddr != "" {
		srv = server.New(server.Config{
			Addr:    opts.metricsAddr,
			Version: version,
			Debug:   deps.Config.Logging.Debug,
		}, log, sched.Status, reg)
		serveErr = srv.StartAsync()
	}

	if startErr := sched.Start(ctx); startErr != nil {
		return startErr
	}
	if opts.runNow {
		go func() {
			if runErr := sched.RunOnce(ctx); runErr != nil {
				log.Error("Initial crawl failed", "error", runErr)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	case e, ok := <-serveErr:
		if ok {
			runErr = e
		}
	}

	sched.Stop()
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
			runErr = errors.Join(runErr, shutdownErr)
		}
	}
	return runErr
}

// newRunFunc returns the scheduled job: one crawl with its own run id and
// counters, folded into exporter when it finishes.
func newRunFunc(
	deps cmdcommon.CommandDeps,
	out sink.Sink,
	exporter *metrics.Exporter,
	scrapeType domain.ScrapeType,
) scheduler.RunFunc {
	return func(ctx context.Context) error {
		runID := uuid.NewString()
		log := deps.Logger.WithRunID(runID)
		m := metrics.NewMetrics()

		c, err := crawler.New(crawler.Params{
			Config:  deps.Config.Crawler,
			Logger:  log,
			Sink:    out,
			Metrics: m,
		})
		if err != nil {
			return fmt.Errorf("failed to create crawler: %w", err)
		}

		log.Info("Crawl started", "scrape_type", scrapeType.String())
		runErr := c.Start(ctx, scrapeType)
		summary := m.Snapshot()
		exporter.Observe(summary, runErr)

		log.WithDuration(summary.Duration).Info("Crawl finished",
			"rankings", summary.RankingsEmitted,
			"fighters", summary.FightersEmitted,
			"errors", summary.Errors,
			"success", runErr == nil,
		)
		return runErr
	}
}
