package extractor

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jonesrussell/fightcrawl/internal/domain"
)

const (
	// DefaultBaseURL is the production FightMatrix origin.
	DefaultBaseURL = "https://www.fightmatrix.com"
	// SnapshotsPath is the path of the ranking snapshot index.
	SnapshotsPath = "/historical-mma-rankings/ranking-snapshots/"
	// FighterProfilePath prefixes every fighter profile path.
	FighterProfilePath = "/fighter-profile/"
)

// Site builds and decodes FightMatrix URLs for one origin.
type Site struct {
	base *url.URL
}

// NewSite parses baseURL, e.g. "https://www.fightmatrix.com".
func NewSite(baseURL string) (Site, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return Site{}, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Site{}, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return Site{base: u}, nil
}

// MustSite is NewSite for constant inputs.
func MustSite(baseURL string) Site {
	s, err := NewSite(baseURL)
	if err != nil {
		panic(err)
	}
	return s
}

// BaseURL returns the origin without a trailing slash.
func (s Site) BaseURL() string {
	return s.base.String()
}

// Hostname returns the host without port, for domain allow-lists.
func (s Site) Hostname() string {
	return s.base.Hostname()
}

// IndexURL is the ranking snapshot index.
func (s Site) IndexURL() string {
	return s.BaseURL() + SnapshotsPath
}

// DivisionURL is the first ranking page of division d in snapshot issue.
func (s Site) DivisionURL(issue string, d domain.Division) string {
	return s.IndexURL() + "?Issue=" + url.QueryEscape(issue) + "&Division=" + strconv.Itoa(int(d))
}

// ProfileURL is the profile page of the given fighter id.
func (s Site) ProfileURL(fighterID string) string {
	return s.BaseURL() + FighterProfilePath + fighterID
}

// FighterID returns the id encoded in a fighter profile URL: its escaped path
// with the profile prefix removed. ok is false for non-profile URLs and for
// degenerate ids such as "//".
func (s Site) FighterID(u *url.URL) (id string, ok bool) {
	if u == nil {
		return "", false
	}
	path := u.EscapedPath()
	if !strings.HasPrefix(path, FighterProfilePath) {
		return "", false
	}
	id = strings.TrimPrefix(path, FighterProfilePath)
	if strings.Trim(id, "/") == "" {
		return "", false
	}
	return id, true
}
