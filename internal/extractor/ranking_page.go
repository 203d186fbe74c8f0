package extractor

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/fightcrawl/internal/domain"
)

const (
	colRank = iota
	colRankChange
	colFighter
	colPoints
	rankColumns
)

// newlyRanked is the rank-change marker for a fighter absent from the previous snapshot.
const newlyRanked = "NR"

// RankingPage is everything extracted from one ranking page.
type RankingPage struct {
	// Rankings and Profiles are parallel: Profiles[i] is the fighter of Rankings[i].
	Rankings []domain.Ranking
	Profiles []ProfileLink
	// Next is the following page of the same table, if any.
	Next *Task
	// RowErrors holds one error per row that could not be parsed. Each wraps ErrInvalidRow.
	RowErrors []error
	// Skipped counts rows without a usable fighter link.
	Skipped int
}

// ExtractRankingPage reads the ranking table and pager of the page fetched for task.
func ExtractRankingPage(doc *goquery.Document, task Task, site Site) (*RankingPage, error) {
	pageURL, err := url.Parse(task.URL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}

	table := doc.Find("table.tblRank").First()
	if table.Length() == 0 {
		return nil, ErrMissingRankTable
	}

	page := &RankingPage{}
	table.ChildrenFiltered("tbody").ChildrenFiltered("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		ranking, profile, ok, rowErr := extractRow(row, pageURL, site, task)
		switch {
		case rowErr != nil:
			page.RowErrors = append(page.RowErrors, fmt.Errorf("%w: row %d: %w", ErrInvalidRow, i, rowErr))
		case !ok:
			page.Skipped++
		default:
			page.Rankings = append(page.Rankings, ranking)
			page.Profiles = append(page.Profiles, profile)
		}
	})

	page.Next = nextPage(doc, pageURL, task)
	return page, nil
}

// extractRow parses one table row. ok is false when the row has no usable
// fighter link and must be skipped without error.
func extractRow(row *goquery.Selection, pageURL *url.URL, site Site, task Task) (domain.Ranking, ProfileLink, bool, error) {
	var none domain.Ranking

	cells := row.ChildrenFiltered("td")
	if cells.Length() < rankColumns {
		return none, ProfileLink{}, false, fmt.Errorf("expected %d cells, got %d", rankColumns, cells.Length())
	}

	rankText := leadingText(cells.Eq(colRank))
	rank, err := strconv.Atoi(rankText)
	if err != nil {
		return none, ProfileLink{}, false, fmt.Errorf("rank %q: %w", rankText, err)
	}

	rankChange, err := parseRankChange(leadingText(cells.Eq(colRankChange)))
	if err != nil {
		return none, ProfileLink{}, false, err
	}

	href, _ := cells.Eq(colFighter).Find("a[href]").First().Attr("href")
	href = strings.TrimSpace(href)
	if href == "" || strings.Trim(href, "/") == "" {
		return none, ProfileLink{}, false, nil
	}
	ref, err := url.Parse(href)
	if err != nil {
		return none, ProfileLink{}, false, nil
	}
	profileURL := pageURL.ResolveReference(ref)
	fighterID, ok := site.FighterID(profileURL)
	if !ok {
		return none, ProfileLink{}, false, nil
	}

	pointsText := ownText(cells.Eq(colPoints).Find("div.tdBar").First())
	points, err := strconv.Atoi(pointsText)
	if err != nil {
		return none, ProfileLink{}, false, fmt.Errorf("points %q: %w", pointsText, err)
	}
	if points < 0 {
		return none, ProfileLink{}, false, fmt.Errorf("points %d: negative", points)
	}

	ranking := domain.Ranking{
		FighterID:   fighterID,
		Date:        task.Date,
		WeightClass: task.WeightClass,
		Rank:        rank,
		RankChange:  rankChange,
		Points:      points,
	}
	return ranking, ProfileLink{URL: profileURL.String(), FighterID: fighterID}, true, nil
}

// parseRankChange maps "NR" to nil, "" to 0 and anything else to a signed integer.
func parseRankChange(text string) (*int, error) {
	switch text {
	case newlyRanked:
		return nil, nil
	case "":
		zero := 0
		return &zero, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return nil, fmt.Errorf("rank change %q: %w", text, err)
	}
	return &n, nil
}

// nextPage returns the first pager link labelled ">" in the first pager table.
func nextPage(doc *goquery.Document, pageURL *url.URL, task Task) *Task {
	var next *Task
	doc.Find("table.pager").First().Find("tr > td > a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if leadingText(a.Find("b").First()) != ">" {
			return true
		}
		href, ok := a.Attr("href")
		if !ok {
			return true
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return true
		}
		t := task
		t.URL = pageURL.ResolveReference(ref).String()
		next = &t
		return false
	})
	return next
}
