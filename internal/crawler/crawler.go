// Package crawler drives a FightMatrix crawl: it fetches the snapshot index,
// walks every planned ranking page chain and visits each ranked fighter's
// profile once, handing records to a sink as they are extracted.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	colly "github.com/gocolly/colly/v2"

	crawlerconfig "github.com/jonesrussell/fightcrawl/internal/config/crawler"
	"github.com/jonesrussell/fightcrawl/internal/domain"
	"github.com/jonesrussell/fightcrawl/internal/extractor"
	"github.com/jonesrussell/fightcrawl/internal/logger"
	"github.com/jonesrussell/fightcrawl/internal/metrics"
	"github.com/jonesrussell/fightcrawl/internal/sink"
)

// Params holds the dependencies of a Crawler.
type Params struct {
	Config  *crawlerconfig.Config
	Logger  logger.Interface
	Sink    sink.Sink
	Metrics *metrics.Metrics
}

// Crawler runs crawls against one site. A Crawler runs one crawl at a time;
// each Start uses a fresh collector, so profiles are deduplicated per run.
type Crawler struct {
	cfg     *crawlerconfig.Config
	logger  logger.Interface
	sink    sink.Sink
	metrics *metrics.Metrics
	site    extractor.Site

	running atomic.Bool

	// Per-run state, reset by Start.
	collector         *colly.Collector
	abort             *abortSignal
	scrapeType        domain.ScrapeType
	consecutiveErrors atomic.Int64
}

// New creates a Crawler. Metrics is optional.
func New(p Params) (*Crawler, error) {
	if p.Config == nil {
		return nil, fmt.Errorf("%w: config is required", ErrInvalidParams)
	}
	if p.Logger == nil {
		return nil, fmt.Errorf("%w: logger is required", ErrInvalidParams)
	}
	if p.Sink == nil {
		return nil, fmt.Errorf("%w: sink is required", ErrInvalidParams)
	}
	if err := p.Config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	site, err := extractor.NewSite(p.Config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	m := p.Metrics
	if m == nil {
		m = metrics.NewMetrics()
	}

	return &Crawler{
		cfg:     p.Config,
		logger:  p.Logger.WithComponent("crawler"),
		sink:    p.Sink,
		metrics: m,
		site:    site,
	}, nil
}

// Metrics returns the counters the crawler reports into.
func (c *Crawler) Metrics() *metrics.Metrics {
	return c.metrics
}

// Start crawls the site in the given mode and blocks until every queued
// request has been handled, the crawl aborts, or ctx is cancelled.
//
// It returns nil when the crawl drains normally, an error wrapping
// ErrIndexFailed when the snapshot index cannot be used, an error wrapping
// ErrTooManyErrors on early abort, and ctx.Err() on cancellation.
func (c *Crawler) Start(ctx context.Context, scrapeType domain.ScrapeType) error {
	if err := scrapeType.Validate(); err != nil {
		return err
	}
	if !c.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer c.running.Store(false)

	c.scrapeType = scrapeType
	c.abort = newAbortSignal()
	c.consecutiveErrors.Store(0)

	if err := c.setupCollector(ctx); err != nil {
		return fmt.Errorf("failed to setup collector: %w", err)
	}

	indexURL := c.site.IndexURL()
	c.logger.Info("Starting crawl",
		"scrape_type", scrapeType.String(),
		"url", indexURL,
		"max_concurrency", c.cfg.MaxConcurrency,
	)

	if err := c.collector.Request("GET", indexURL, nil, newRequestContext(kindIndex), nil); err != nil {
		return fmt.Errorf("%w: %w", ErrIndexFailed, err)
	}

	waitDone := make(chan struct{})
	go func() {
		c.collector.Wait()
		close(waitDone)
	}()

	select {
	case <-waitDone:
	case <-ctx.Done():
		c.logger.Info("Context cancelled, aborting crawl")
		c.abort.Abort(ctx.Err())
		select {
		case <-waitDone:
		case <-time.After(collectorStopTimeout):
			c.logger.Warn("Collector did not finish after cancellation")
		}
		return ctx.Err()
	}

	summary := c.metrics.Snapshot()
	if cause := c.abort.Cause(); cause != nil {
		c.logger.Error("Crawl aborted",
			"error", cause,
			"rankings", summary.RankingsEmitted,
			"fighters", summary.FightersEmitted,
		)
		return cause
	}

	c.logger.Info("Crawl finished",
		"duration", summary.Duration,
		"pages", summary.PagesFetched,
		"rankings", summary.RankingsEmitted,
		"fighters", summary.FightersEmitted,
		"errors", summary.Errors,
	)
	return nil
}

// recordError logs err and counts it toward the early-abort limit.
func (c *Crawler) recordError(msg string, pageURL string, err error) {
	c.metrics.IncrementErrors()
	c.logger.WithURL(pageURL).WithError(err).Error(msg)

	n := c.consecutiveErrors.Add(1)
	limit := int64(c.cfg.MaxConsecutiveErrors)
	if limit > 0 && n >= limit {
		c.abort.Abort(fmt.Errorf("%w: %d in a row, last: %w", ErrTooManyErrors, n, err))
	}
}

// recordSuccess resets the consecutive error count.
func (c *Crawler) recordSuccess() {
	c.consecutiveErrors.Store(0)
}

// fatal aborts the run immediately with err.
func (c *Crawler) fatal(pageURL string, err error) {
	c.metrics.IncrementErrors()
	c.logger.WithURL(pageURL).WithError(err).Error("Fatal crawl error")
	c.abort.Abort(err)
}

// enqueue schedules a request unless the run is aborting. Already visited
// URLs are silently skipped.
func (c *Crawler) enqueue(rawURL string, rctx *colly.Context) {
	if c.abort.aborted() {
		return
	}
	err := c.collector.Request("GET", rawURL, nil, rctx, nil)
	var visited *colly.AlreadyVisitedError
	switch {
	case err == nil:
	case errors.As(err, &visited):
		c.logger.Debug("Skipping visited URL", "url", rawURL)
	default:
		c.metrics.IncrementTasksDropped()
		c.logger.Warn("Failed to enqueue request", "url", rawURL, "error", err)
	}
}

func newRequestContext(kind string) *colly.Context {
	rctx := colly.NewContext()
	rctx.Put(kindKey, kind)
	return rctx
}
