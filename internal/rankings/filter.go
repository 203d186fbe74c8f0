// Package rankings decides which (snapshot date, division) pairs are worth
// crawling.
package rankings

import (
	"time"

	"github.com/jonesrussell/fightcrawl/internal/domain"
)

// Decision is the outcome of Filter.
type Decision int

const (
	// Emit means the division page for this date should be crawled.
	Emit Decision = iota
	// SkipDate abandons every remaining division for the date.
	SkipDate
	// SkipDivision skips only this division; later divisions for the date are still checked.
	SkipDivision
)

var (
	cornerDataCutoff      = time.Date(2010, time.March, 1, 0, 0, 0, 0, time.UTC)
	womensDivisionsCutoff = time.Date(2013, time.February, 1, 0, 0, 0, 0, time.UTC)
)

// CornerDataCutoff returns the first snapshot date with data reliable enough
// to match fighters.
func CornerDataCutoff() time.Time { return cornerDataCutoff }

// WomensDivisionsCutoff returns the first snapshot date on which the women's
// divisions exist.
func WomensDivisionsCutoff() time.Time { return womensDivisionsCutoff }

// Filter applies the historical cutoffs. Rule order matters: the date cutoff
// is checked before the division cutoff.
func Filter(date time.Time, division domain.Division) Decision {
	if date.Before(cornerDataCutoff) {
		return SkipDate
	}
	if date.Before(womensDivisionsCutoff) && division.IsWomens() {
		return SkipDivision
	}
	return Emit
}

func (d Decision) String() string {
	switch d {
	case Emit:
		return "emit"
	case SkipDate:
		return "skip_date"
	case SkipDivision:
		return "skip_division"
	default:
		return "unknown"
	}
}
