package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/fightcrawl/internal/domain"
)

func TestDivisionsOrder(t *testing.T) {
	t.Parallel()

	want := []domain.Division{1, 2, 3, 4, 5, 6, 7, 8, 16, 15, 14, 13}
	assert.Equal(t, want, domain.Divisions())
}

func TestDivisionName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		div    domain.Division
		name   string
		womens bool
	}{
		{domain.Heavyweight, "Heavyweight", false},
		{domain.LightHeavyweight, "Light Heavyweight", false},
		{domain.Flyweight, "Flyweight", false},
		{domain.WomensFeatherweight, "Women's Featherweight", true},
		{domain.WomensStrawweight, "Women's Strawweight", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.name, tt.div.Name())
			assert.Equal(t, tt.womens, tt.div.IsWomens())
			assert.True(t, tt.div.Valid())
		})
	}

	assert.False(t, domain.Division(9).Valid())
	assert.Empty(t, domain.Division(9).Name())
}

func TestParseScrapeType(t *testing.T) {
	t.Parallel()

	st, err := domain.ParseScrapeType("most_recent")
	require.NoError(t, err)
	assert.Equal(t, domain.ScrapeMostRecent, st)

	st, err = domain.ParseScrapeType("all")
	require.NoError(t, err)
	assert.Equal(t, domain.ScrapeAll, st)

	for _, bad := range []string{"", "ALL", "latest", "most-recent"} {
		_, err = domain.ParseScrapeType(bad)
		require.ErrorIs(t, err, domain.ErrInvalidScrapeType, bad)
	}
}

func TestRankingKey(t *testing.T) {
	t.Parallel()

	r := domain.Ranking{FighterID: "jon-jones/1234/", Date: "2020-01-01", WeightClass: "Heavyweight"}
	assert.Equal(t, "jon-jones/1234/|2020-01-01|Heavyweight", r.Key())
}
