package rankings_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/fightcrawl/internal/domain"
	"github.com/jonesrussell/fightcrawl/internal/rankings"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFilter_BeforeCornerCutoffNeverEmits(t *testing.T) {
	t.Parallel()

	dates := []time.Time{
		day(1995, time.January, 1),
		day(2009, time.December, 31),
		day(2010, time.February, 28),
	}
	for _, d := range dates {
		for _, div := range domain.Divisions() {
			assert.Equal(t, rankings.SkipDate, rankings.Filter(d, div), "%s %s", d.Format(domain.DateLayout), div)
		}
	}
}

func TestFilter_WomensWindow(t *testing.T) {
	t.Parallel()

	dates := []time.Time{
		day(2010, time.March, 1),
		day(2011, time.June, 15),
		day(2013, time.January, 31),
	}
	for _, d := range dates {
		for _, div := range domain.Divisions() {
			want := rankings.Emit
			if div.IsWomens() {
				want = rankings.SkipDivision
			}
			assert.Equal(t, want, rankings.Filter(d, div), "%s %s", d.Format(domain.DateLayout), div)
		}
	}
}

func TestFilter_AfterCutoffsEmitsAll(t *testing.T) {
	t.Parallel()

	for _, d := range []time.Time{day(2013, time.February, 1), day(2024, time.May, 1)} {
		for _, div := range domain.Divisions() {
			assert.Equal(t, rankings.Emit, rankings.Filter(d, div))
		}
	}
}

func TestDecisionString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "emit", rankings.Emit.String())
	assert.Equal(t, "skip_date", rankings.SkipDate.String())
	assert.Equal(t, "skip_division", rankings.SkipDivision.String())
	assert.Equal(t, "unknown", rankings.Decision(42).String())
}

func TestCutoffs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, day(2010, time.March, 1), rankings.CornerDataCutoff())
	assert.Equal(t, day(2013, time.February, 1), rankings.WomensDivisionsCutoff())

	// The cutoff days themselves are inside the window they open.
	assert.Equal(t, rankings.SkipDivision, rankings.Filter(rankings.CornerDataCutoff(), domain.WomensFlyweight))
	assert.Equal(t, rankings.Emit, rankings.Filter(rankings.WomensDivisionsCutoff(), domain.WomensFlyweight))
	assert.Equal(t, rankings.SkipDate, rankings.Filter(rankings.CornerDataCutoff().Add(-time.Nanosecond), domain.Heavyweight))
}
