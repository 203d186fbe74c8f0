package extractor

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/fightcrawl/internal/domain"
)

const (
	sherdogHost  = "www.sherdog.com"
	tapologyHost = "www.tapology.com"
)

// ExtractFighterProfile reads the fighter name and the Sherdog and Tapology
// cross-references from a profile page. The first link to each site wins.
func ExtractFighterProfile(doc *goquery.Document, pageURL string, site Site) (domain.Fighter, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return domain.Fighter{}, fmt.Errorf("parse page url: %w", err)
	}
	fighterID, ok := site.FighterID(u)
	if !ok {
		return domain.Fighter{}, fmt.Errorf("%w: %s", ErrNotFighterProfile, pageURL)
	}

	name := leadingText(doc.Find("div.posttitle > h1 > a").First())
	if name == "" {
		return domain.Fighter{}, fmt.Errorf("%w: %s", ErrMissingFighterName, pageURL)
	}

	fighter := domain.Fighter{
		FighterName: name,
		FighterID:   fighterID,
	}

	doc.Find("td.tdRankHead > div.leftCol * > a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		link := a.AttrOr("href", "")
		switch {
		case strings.Contains(link, sherdogHost):
			if fighter.SherdogFighterID == nil {
				fighter.SherdogFighterID = externalID(link)
			}
		case strings.Contains(link, tapologyHost):
			if fighter.TapologyFighterID == nil {
				fighter.TapologyFighterID = externalID(link)
			}
		}
		return fighter.SherdogFighterID == nil || fighter.TapologyFighterID == nil
	})

	return fighter, nil
}

func externalID(link string) *string {
	id := lastSegment(link)
	if id == "" {
		return nil
	}
	return &id
}
