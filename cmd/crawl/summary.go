package crawl

import (
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/jonesrussell/fightcrawl/internal/domain"
	"github.com/jonesrussell/fightcrawl/internal/metrics"
)

// renderSummary prints the outcome of a crawl run as a table.
func renderSummary(w io.Writer, runID string, scrapeType domain.ScrapeType, s metrics.Summary, runErr error) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Crawl summary")
	t.AppendHeader(table.Row{"Metric", "Value"})

	status := "success"
	if runErr != nil {
		status = "failed: " + runErr.Error()
	}

	t.AppendRows([]table.Row{
		{"Run ID", runID},
		{"Scrape type", scrapeType.String()},
		{"Status", status},
		{"Duration", s.Duration.Round(time.Millisecond).String()},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Pages fetched", s.PagesFetched},
		{"Rankings emitted", s.RankingsEmitted},
		{"Fighters emitted", s.FightersEmitted},
		{"Rows skipped", s.RowsSkipped},
		{"Row errors", s.RowErrors},
		{"Retries", s.Retries},
		{"Requests dropped", s.TasksDropped},
		{"Errors", s.Errors},
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, WidthMax: 80},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
