package crawler

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	colly "github.com/gocolly/colly/v2"
)

// setupCollector builds a fresh collector for one run.
func (c *Crawler) setupCollector(ctx context.Context) error {
	c.collector = colly.NewCollector(c.buildCollectorOptions(ctx)...)
	c.collector.IgnoreRobotsTxt = !c.cfg.RespectRobotsTxt
	c.collector.SetRequestTimeout(c.cfg.RequestTimeout)

	err := c.collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: c.cfg.MaxConcurrency,
		Delay:       c.cfg.Delay,
		RandomDelay: c.cfg.RandomDelay,
	})
	if err != nil {
		return fmt.Errorf("failed to set rate limit: %w", err)
	}

	c.collector.OnRequest(c.requestCallback(ctx))
	c.collector.OnResponse(c.responseCallback(ctx))
	c.collector.OnError(c.errorCallback(ctx))

	c.logger.Debug("Collector configured",
		"allowed_domain", c.site.Hostname(),
		"parallelism", c.cfg.MaxConcurrency,
		"delay", c.cfg.Delay,
		"random_user_agent", c.cfg.UseRandomUserAgent,
	)
	return nil
}

func (c *Crawler) buildCollectorOptions(ctx context.Context) []colly.CollectorOption {
	opts := []colly.CollectorOption{
		colly.StdlibContext(ctx),
		colly.Async(true),
		colly.AllowedDomains(c.site.Hostname()),
	}
	if !c.cfg.UseRandomUserAgent {
		opts = append(opts, colly.UserAgent(c.cfg.UserAgent))
	}
	if c.cfg.MaxBodySize > 0 {
		opts = append(opts, colly.MaxBodySize(c.cfg.MaxBodySize))
	}
	return opts
}

// requestCallback returns the OnRequest callback (abort checks, random user agent).
func (c *Crawler) requestCallback(ctx context.Context) func(*colly.Request) {
	return func(r *colly.Request) {
		select {
		case <-ctx.Done():
			r.Abort()
			return
		case <-c.abort.Done():
			r.Abort()
			return
		default:
		}
		if c.cfg.UseRandomUserAgent {
			r.Headers.Set("User-Agent", randomUserAgents[rand.IntN(len(randomUserAgents))])
		}
		c.logger.Debug("Visiting URL", "url", r.URL.String(), "kind", r.Ctx.Get(kindKey))
	}
}

// responseCallback parses the page and dispatches on the request kind.
func (c *Crawler) responseCallback(ctx context.Context) func(*colly.Response) {
	return func(r *colly.Response) {
		c.metrics.IncrementPagesFetched()
		switch kind := r.Request.Ctx.Get(kindKey); kind {
		case kindIndex:
			c.handleIndex(r)
		case kindRanking:
			c.handleRankingPage(ctx, r)
		case kindFighter:
			c.handleFighterProfile(ctx, r)
		default:
			c.logger.Warn("Response without a known kind", "url", r.Request.URL.String(), "kind", kind)
		}
	}
}

// errorCallback handles fetch failures: transient errors are retried, the
// rest count toward early abort. A failed index fetch ends the run.
func (c *Crawler) errorCallback(ctx context.Context) func(*colly.Response, error) {
	return func(r *colly.Response, visitErr error) {
		if ctx.Err() != nil || c.abort.aborted() {
			return
		}
		pageURL := r.Request.URL.String()

		if c.isTransientCrawlError(r, visitErr) && c.tryRetry(ctx, r) {
			return
		}

		c.metrics.IncrementTasksDropped()
		err := fmt.Errorf("fetch failed (status %d): %w", r.StatusCode, visitErr)
		if r.Request.Ctx.Get(kindKey) == kindIndex {
			c.fatal(pageURL, fmt.Errorf("%w: %w", ErrIndexFailed, err))
			return
		}
		c.recordError("Crawl error", pageURL, err)
	}
}

// tryRetry re-issues the request after RetryDelay. It returns false once
// the retries are used up.
func (c *Crawler) tryRetry(ctx context.Context, r *colly.Response) bool {
	count := 0
	if v, ok := r.Request.Ctx.GetAny(retryCountKey).(int); ok {
		count = v
	}
	if count >= c.cfg.MaxRetries {
		c.logger.Warn("Retries exhausted",
			"url", r.Request.URL.String(),
			"status", r.StatusCode,
			"retries", count,
		)
		return false
	}

	r.Request.Ctx.Put(retryCountKey, count+1)
	c.metrics.IncrementRetries()
	c.logger.Debug("Retrying request",
		"url", r.Request.URL.String(),
		"status", r.StatusCode,
		"attempt", count+1,
	)

	select {
	case <-time.After(c.cfg.RetryDelay):
	case <-ctx.Done():
		return true
	case <-c.abort.Done():
		return true
	}

	if err := r.Request.Retry(); err != nil {
		c.logger.Warn("Retry failed", "url", r.Request.URL.String(), "error", err)
		return false
	}
	return true
}

// isTransientCrawlError returns true if the error looks retryable
// (connection issues, 408, 429, 5xx).
func (c *Crawler) isTransientCrawlError(r *colly.Response, visitErr error) bool {
	errMsg := strings.ToLower(visitErr.Error())
	transientPatterns := []string{
		"connection refused", "connection reset", "temporary failure",
		"eof", "broken pipe", "no such host", "i/o timeout",
		"connection timed out", "timeout",
	}
	for _, p := range transientPatterns {
		if strings.Contains(errMsg, p) {
			return true
		}
	}
	if r == nil {
		return false
	}
	switch {
	case r.StatusCode == http.StatusRequestTimeout, r.StatusCode == http.StatusTooManyRequests:
		return true
	case r.StatusCode >= http.StatusInternalServerError && r.StatusCode < 600:
		return true
	}
	return false
}
