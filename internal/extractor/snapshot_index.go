package extractor

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"

	"github.com/jonesrussell/fightcrawl/internal/domain"
	"github.com/jonesrussell/fightcrawl/internal/rankings"
)

// Snapshot is one ranking publication listed on the index page.
type Snapshot struct {
	Issue string
	Date  time.Time
}

// ExtractSnapshots reads the issue selector of the index page. The first
// option is a placeholder and is dropped. Snapshots are returned in page
// order, newest first on the live site.
func ExtractSnapshots(doc *goquery.Document) ([]Snapshot, error) {
	cell := doc.Find("table#filterTable * > td").First()
	if cell.Length() == 0 {
		return nil, fmt.Errorf("%w: filter table not found", ErrMalformedIndex)
	}

	var issues, dates []string
	cell.Find("option").Each(func(_ int, opt *goquery.Selection) {
		if v, ok := opt.Attr("value"); ok {
			issues = append(issues, strings.TrimSpace(v))
		}
		dates = append(dates, strings.TrimSpace(opt.Text()))
	})
	if len(issues) > 0 {
		issues = issues[1:]
	}
	if len(dates) > 0 {
		dates = dates[1:]
	}

	if len(issues) != len(dates) {
		return nil, fmt.Errorf("%w: %d issues but %d dates", ErrMalformedIndex, len(issues), len(dates))
	}
	if len(issues) == 0 {
		return nil, fmt.Errorf("%w: no snapshots listed", ErrMalformedIndex)
	}

	snapshots := make([]Snapshot, 0, len(issues))
	for i, raw := range dates {
		t, err := dateparse.ParseIn(raw, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: snapshot date %q: %w", ErrMalformedIndex, raw, err)
		}
		snapshots = append(snapshots, Snapshot{
			Issue: issues[i],
			Date:  time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
		})
	}
	return snapshots, nil
}

// PlanTasks expands snapshots into ranking-page tasks, one per division that
// passes the historical filter. most_recent keeps only the first snapshot.
func PlanTasks(snapshots []Snapshot, site Site, scrapeType domain.ScrapeType) []Task {
	if scrapeType == domain.ScrapeMostRecent && len(snapshots) > 1 {
		snapshots = snapshots[:1]
	}

	var tasks []Task
	for _, snap := range snapshots {
		date := snap.Date.Format(domain.DateLayout)
	divisions:
		for _, div := range domain.Divisions() {
			switch rankings.Filter(snap.Date, div) {
			case rankings.SkipDate:
				break divisions
			case rankings.SkipDivision:
				continue
			case rankings.Emit:
				tasks = append(tasks, Task{
					URL:         site.DivisionURL(snap.Issue, div),
					Issue:       snap.Issue,
					Division:    div,
					Date:        date,
					WeightClass: div.Name(),
				})
			}
		}
	}
	return tasks
}

// ExtractSnapshotIndex is ExtractSnapshots followed by PlanTasks.
func ExtractSnapshotIndex(doc *goquery.Document, site Site, scrapeType domain.ScrapeType) ([]Task, error) {
	if err := scrapeType.Validate(); err != nil {
		return nil, err
	}
	snapshots, err := ExtractSnapshots(doc)
	if err != nil {
		return nil, err
	}
	return PlanTasks(snapshots, site, scrapeType), nil
}
