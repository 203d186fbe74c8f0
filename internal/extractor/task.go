package extractor

import "github.com/jonesrussell/fightcrawl/internal/domain"

// Task is a request for one ranking page. Pagination copies the task and
// replaces URL, so Date and WeightClass follow the whole chain.
type Task struct {
	URL         string
	Issue       string
	Division    domain.Division
	Date        string
	WeightClass string
}

// ProfileLink is a request for a fighter profile page.
type ProfileLink struct {
	URL       string
	FighterID string
}
