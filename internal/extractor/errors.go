package extractor

import "errors"

// Errors returned by the extractors.
var (
	// ErrMalformedIndex means the snapshot index page no longer has the expected shape.
	// The crawl cannot continue without it.
	ErrMalformedIndex = errors.New("malformed snapshot index")
	// ErrMissingRankTable is returned when a ranking page has no ranking table.
	ErrMissingRankTable = errors.New("ranking table not found")
	// ErrInvalidRow wraps every row-level failure on a ranking page.
	ErrInvalidRow = errors.New("invalid ranking row")
	// ErrMissingFighterName is returned when a profile page has no fighter name heading.
	ErrMissingFighterName = errors.New("fighter name not found")
	// ErrNotFighterProfile is returned when a profile URL is outside the fighter profile path.
	ErrNotFighterProfile = errors.New("not a fighter profile URL")
	// ErrInvalidBaseURL is returned by NewSite for a base URL without scheme or host.
	ErrInvalidBaseURL = errors.New("invalid base URL")
)
