package extractor_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/fightcrawl/internal/extractor"
)

func profileHTML(name string, links ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="posttitle"><h1><a href="#">` + name + `</a></h1></div>`)
	b.WriteString(`<table><tr><td class="tdRankHead"><div class="leftCol"><div class="links">`)
	for _, l := range links {
		b.WriteString(`<a href="` + l + `">link</a> `)
	}
	b.WriteString(`</div></div></td></tr></table></body></html>`)
	return b.String()
}

func TestExtractFighterProfile(t *testing.T) {
	t.Parallel()

	site := extractor.MustSite(extractor.DefaultBaseURL)
	doc := mustDoc(t, profileHTML("  Jon Jones \n",
		"https://www.fightmatrix.com/mma-ranks/heavyweight/",
		"https://www.sherdog.com/fighter/Jon-Jones-27944",
		"https://www.tapology.com/fightcenter/fighters/jon-jones-bones",
		"https://www.sherdog.com/fighter/Someone-Else-1",
	))

	fighter, err := extractor.ExtractFighterProfile(doc, site.ProfileURL("Jon+Jones/9617/"), site)
	require.NoError(t, err)
	assert.Equal(t, "Jon Jones", fighter.FighterName)
	assert.Equal(t, "Jon+Jones/9617/", fighter.FighterID)
	require.NotNil(t, fighter.SherdogFighterID)
	assert.Equal(t, "Jon-Jones-27944", *fighter.SherdogFighterID)
	require.NotNil(t, fighter.TapologyFighterID)
	assert.Equal(t, "jon-jones-bones", *fighter.TapologyFighterID)
}

func TestExtractFighterProfile_NoCrossReferences(t *testing.T) {
	t.Parallel()

	site := extractor.MustSite(extractor.DefaultBaseURL)
	doc := mustDoc(t, profileHTML("Unknown Prospect", "https://www.bjjheroes.com/x"))

	fighter, err := extractor.ExtractFighterProfile(doc, site.ProfileURL("Unknown+Prospect/1/"), site)
	require.NoError(t, err)
	assert.Equal(t, "Unknown Prospect", fighter.FighterName)
	assert.Nil(t, fighter.SherdogFighterID)
	assert.Nil(t, fighter.TapologyFighterID)
}

func TestExtractFighterProfile_Errors(t *testing.T) {
	t.Parallel()

	site := extractor.MustSite(extractor.DefaultBaseURL)

	_, err := extractor.ExtractFighterProfile(mustDoc(t, profileHTML("")), site.ProfileURL("A/1/"), site)
	require.ErrorIs(t, err, extractor.ErrMissingFighterName)

	_, err = extractor.ExtractFighterProfile(mustDoc(t, profileHTML("A")), site.IndexURL(), site)
	require.ErrorIs(t, err, extractor.ErrNotFighterProfile)
}

// A profile followed from a ranking row reports the same fighter id as the row.
func TestRankingToProfileRoundTrip(t *testing.T) {
	t.Parallel()

	site := extractor.MustSite(extractor.DefaultBaseURL)
	hrefs := []string{
		"/fighter-profile/Jon+Jones/9617/",
		"/fighter-profile/Jos%C3%A9+Aldo/1234/",
		"https://www.fightmatrix.com/fighter-profile/Amanda+Nunes/15017/",
		"../../fighter-profile/Israel+Adesanya/56236/",
	}
	rows := make([]string, 0, len(hrefs))
	for i, href := range hrefs {
		rows = append(rows, row(string(rune('1'+i)), "", href, "100"))
	}
	page, err := extractor.ExtractRankingPage(mustDoc(t, rankingHTML("", rows...)), heavyweightTask(site), site)
	require.NoError(t, err)
	require.Len(t, page.Profiles, len(hrefs))

	for i, link := range page.Profiles {
		fighter, err := extractor.ExtractFighterProfile(mustDoc(t, profileHTML("Name")), link.URL, site)
		require.NoError(t, err)
		assert.Equal(t, page.Rankings[i].FighterID, fighter.FighterID)
	}
}
