package crawler

import (
	"context"
	"fmt"

	colly "github.com/gocolly/colly/v2"

	"github.com/jonesrussell/fightcrawl/internal/extractor"
)

// handleIndex plans the ranking page tasks. Any failure here is fatal.
func (c *Crawler) handleIndex(r *colly.Response) {
	pageURL := r.Request.URL.String()

	doc, err := extractor.ParseDocument(r.Body)
	if err != nil {
		c.fatal(pageURL, fmt.Errorf("%w: %w", ErrIndexFailed, err))
		return
	}
	tasks, err := extractor.ExtractSnapshotIndex(doc, c.site, c.scrapeType)
	if err != nil {
		c.fatal(pageURL, fmt.Errorf("%w: %w", ErrIndexFailed, err))
		return
	}

	c.recordSuccess()
	c.logger.WithURL(pageURL).Info("Snapshot index extracted", "tasks", len(tasks))
	for _, task := range tasks {
		c.enqueueRankingPage(task)
	}
}

// handleRankingPage emits the page's rankings, queues the fighters' profiles
// and then the next page of the chain.
func (c *Crawler) handleRankingPage(ctx context.Context, r *colly.Response) {
	pageURL := r.Request.URL.String()
	task, ok := r.Request.Ctx.GetAny(taskKey).(extractor.Task)
	if !ok {
		c.recordError("Ranking page without task", pageURL, fmt.Errorf("missing %q in request context", taskKey))
		return
	}
	// Retries and redirects keep the context; the task URL must match what was fetched.
	task.URL = pageURL

	doc, err := extractor.ParseDocument(r.Body)
	if err != nil {
		c.recordError("Failed to parse ranking page", pageURL, err)
		return
	}
	page, err := extractor.ExtractRankingPage(doc, task, c.site)
	if err != nil {
		c.recordError("Failed to extract ranking page", pageURL, err)
		return
	}

	log := c.logger.WithURL(pageURL)
	for _, rowErr := range page.RowErrors {
		log.WithError(rowErr).Warn("Skipping malformed ranking row")
	}
	c.metrics.AddRowErrors(len(page.RowErrors))
	c.metrics.AddRowsSkipped(page.Skipped)

	failed := false
	for i, ranking := range page.Rankings {
		if err = c.sink.WriteRanking(ctx, ranking); err != nil {
			failed = true
			c.recordError("Failed to write ranking", pageURL, err)
		} else {
			c.metrics.IncrementRankings()
		}
		c.enqueueProfile(page.Profiles[i])
	}

	if page.Next != nil {
		c.enqueueRankingPage(*page.Next)
	}
	if !failed {
		c.recordSuccess()
	}

	log.Debug("Ranking page extracted",
		"weight_class", task.WeightClass,
		"date", task.Date,
		"rankings", len(page.Rankings),
		"skipped", page.Skipped,
		"row_errors", len(page.RowErrors),
		"has_next", page.Next != nil,
	)
}

// handleFighterProfile emits the fighter record of a profile page.
func (c *Crawler) handleFighterProfile(ctx context.Context, r *colly.Response) {
	pageURL := r.Request.URL.String()

	doc, err := extractor.ParseDocument(r.Body)
	if err != nil {
		c.recordError("Failed to parse fighter profile", pageURL, err)
		return
	}
	fighter, err := extractor.ExtractFighterProfile(doc, pageURL, c.site)
	if err != nil {
		c.recordError("Failed to extract fighter profile", pageURL, err)
		return
	}
	if err = c.sink.WriteFighter(ctx, fighter); err != nil {
		c.recordError("Failed to write fighter", pageURL, err)
		return
	}

	c.metrics.IncrementFighters()
	c.recordSuccess()
}

func (c *Crawler) enqueueRankingPage(task extractor.Task) {
	rctx := newRequestContext(kindRanking)
	rctx.Put(taskKey, task)
	c.enqueue(task.URL, rctx)
}

func (c *Crawler) enqueueProfile(link extractor.ProfileLink) {
	c.enqueue(link.URL, newRequestContext(kindFighter))
}
