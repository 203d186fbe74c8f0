package testutils

import (
	"fmt"
	"strings"
)

// Helpers that render minimal FightMatrix pages for crawl tests. Only the
// markup the extractors read is produced.

// IndexOption is one entry of the snapshot selector.
type IndexOption struct {
	Issue string
	Date  string
}

// IndexPage renders a snapshot index. A placeholder option is prepended.
func IndexPage(options ...IndexOption) string {
	var b strings.Builder
	b.WriteString(`<html><body><table id="filterTable"><tr><td><select name="Issue"><option value="">Select</option>`)
	for _, o := range options {
		fmt.Fprintf(&b, `<option value="%s">%s</option>`, o.Issue, o.Date)
	}
	b.WriteString(`</select></td></tr></table></body></html>`)
	return b.String()
}

// RankRow is one ranked fighter on a ranking page.
type RankRow struct {
	Rank       string
	RankChange string
	Href       string
	Points     string
}

// RankingPage renders a ranking table with a header row and, when next is
// non-empty, a pager whose forward link points at next.
func RankingPage(next string, rows ...RankRow) string {
	var b strings.Builder
	b.WriteString(`<html><body><table class="tblRank"><tr><td>Rank</td><td>+/-</td><td>Fighter</td><td>Points</td></tr>`)
	for _, r := range rows {
		fmt.Fprintf(&b,
			`<tr><td>%s</td><td>%s</td><td><a href="%s">fighter</a></td><td><div class="tdBar">%s</div></td></tr>`,
			r.Rank, r.RankChange, r.Href, r.Points)
	}
	b.WriteString(`</table>`)
	if next != "" {
		fmt.Fprintf(&b, `<table class="pager"><tr><td><a href="%s"><b>&gt;</b></a></td></tr></table>`, next)
	}
	b.WriteString(`</body></html>`)
	return b.String()
}

// ProfilePage renders a fighter profile with the given external links.
func ProfilePage(name string, links ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<html><body><div class="posttitle"><h1><a href="#">%s</a></h1></div>`, name)
	b.WriteString(`<table><tr><td class="tdRankHead"><div class="leftCol"><div>`)
	for _, l := range links {
		fmt.Fprintf(&b, `<a href="%s">x</a>`, l)
	}
	b.WriteString(`</div></div></td></tr></table></body></html>`)
	return b.String()
}
