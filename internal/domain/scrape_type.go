package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidScrapeType is returned for a scrape type other than most_recent or all.
var ErrInvalidScrapeType = errors.New("invalid scrape type: must be most_recent or all")

// ScrapeType selects how many snapshots a crawl covers.
type ScrapeType string

const (
	// ScrapeMostRecent crawls only the newest snapshot.
	ScrapeMostRecent ScrapeType = "most_recent"
	// ScrapeAll crawls every snapshot on the index page.
	ScrapeAll ScrapeType = "all"
)

// ParseScrapeType validates s.
func ParseScrapeType(s string) (ScrapeType, error) {
	st := ScrapeType(s)
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st, nil
}

// Validate returns ErrInvalidScrapeType unless t is a known mode.
func (t ScrapeType) Validate() error {
	switch t {
	case ScrapeMostRecent, ScrapeAll:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidScrapeType, string(t))
	}
}

func (t ScrapeType) String() string {
	return string(t)
}
