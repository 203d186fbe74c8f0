package crawler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	colly "github.com/gocolly/colly/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	crawlerconfig "github.com/jonesrussell/fightcrawl/internal/config/crawler"
	"github.com/jonesrussell/fightcrawl/internal/crawler"
	"github.com/jonesrussell/fightcrawl/internal/domain"
	"github.com/jonesrussell/fightcrawl/internal/extractor"
	"github.com/jonesrussell/fightcrawl/internal/logger"
	"github.com/jonesrussell/fightcrawl/internal/metrics"
	"github.com/jonesrussell/fightcrawl/internal/sink"
	"github.com/jonesrussell/fightcrawl/testutils"
)

// fakeSite serves a small FightMatrix look-alike. Heavyweight has two pages,
// Light Heavyweight repeats a Heavyweight fighter, every other division is
// empty. Handlers can be overridden per path to inject failures.
type fakeSite struct {
	server *httptest.Server

	mu        sync.Mutex
	hits      map[string]int
	overrides map[string]http.HandlerFunc
	index     string
}

func newFakeSite(t *testing.T) *fakeSite {
	t.Helper()
	fs := &fakeSite{
		hits:      make(map[string]int),
		overrides: make(map[string]http.HandlerFunc),
		index:     testutils.IndexPage(testutils.IndexOption{Issue: "101", Date: "Jan 1, 2020"}),
	}
	fs.server = httptest.NewServer(http.HandlerFunc(fs.serve))
	t.Cleanup(fs.server.Close)
	return fs
}

func (fs *fakeSite) override(key string, h http.HandlerFunc) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.overrides[key] = h
}

func (fs *fakeSite) setIndex(html string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.index = html
}

func (fs *fakeSite) hitCount(key string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.hits[key]
}

func (fs *fakeSite) serve(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Path
	if r.URL.RawQuery != "" {
		key += "?" + r.URL.RawQuery
	}

	fs.mu.Lock()
	fs.hits[key]++
	h := fs.overrides[key]
	index := fs.index
	fs.mu.Unlock()

	if h != nil {
		h(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	switch {
	case key == extractor.SnapshotsPath:
		_, _ = w.Write([]byte(index))
	case strings.HasPrefix(key, extractor.SnapshotsPath+"?"):
		_, _ = w.Write([]byte(rankingPageFor(r)))
	case strings.HasPrefix(key, extractor.FighterProfilePath):
		_, _ = w.Write([]byte(profileFor(key)))
	default:
		http.NotFound(w, r)
	}
}

func rankingPageFor(r *http.Request) string {
	q := r.URL.Query()
	switch {
	case q.Get("Division") == "1" && q.Get("Page") == "":
		return testutils.RankingPage(
			extractor.SnapshotsPath+"?Issue=101&Division=1&Page=2",
			testutils.RankRow{Rank: "1", RankChange: "", Href: "/fighter-profile/Jon+Jones/9617/", Points: "1820"},
			testutils.RankRow{Rank: "2", RankChange: "NR", Href: "/fighter-profile/Ciryl+Gane/144061/", Points: "1402"},
		)
	case q.Get("Division") == "1" && q.Get("Page") == "2":
		return testutils.RankingPage("",
			testutils.RankRow{Rank: "3", RankChange: "-1", Href: "/fighter-profile/Tom+Aspinall/120237/", Points: "1100"},
		)
	case q.Get("Division") == "2":
		return testutils.RankingPage("",
			testutils.RankRow{Rank: "1", RankChange: "+2", Href: "/fighter-profile/Jon+Jones/9617/", Points: "900"},
		)
	default:
		return testutils.RankingPage("")
	}
}

func profileFor(path string) string {
	id := strings.TrimPrefix(path, extractor.FighterProfilePath)
	name := strings.ReplaceAll(strings.SplitN(id, "/", 2)[0], "+", " ")
	return testutils.ProfilePage(name,
		"https://www.sherdog.com/fighter/"+strings.ReplaceAll(name, " ", "-")+"-1",
	)
}

func newCrawler(t *testing.T, baseURL string, s sink.Sink, opts ...crawlerconfig.Option) *crawler.Crawler {
	t.Helper()
	opts = append([]crawlerconfig.Option{
		crawlerconfig.WithBaseURL(baseURL),
		crawlerconfig.WithUserAgent("fightcrawl-test"),
		crawlerconfig.WithRetries(2, 10*time.Millisecond),
		crawlerconfig.WithRequestTimeout(5 * time.Second),
	}, opts...)

	c, err := crawler.New(crawler.Params{
		Config:  crawlerconfig.New(opts...),
		Logger:  logger.NewNoOp(),
		Sink:    s,
		Metrics: metrics.NewMetrics(),
	})
	require.NoError(t, err)
	return c
}

func rankingsFor(rankings []domain.Ranking, weightClass string) []domain.Ranking {
	var out []domain.Ranking
	for _, r := range rankings {
		if r.WeightClass == weightClass {
			out = append(out, r)
		}
	}
	return out
}

func TestNew_RequiresDependencies(t *testing.T) {
	t.Parallel()

	cfg := crawlerconfig.New()
	tests := []struct {
		name   string
		params crawler.Params
	}{
		{"missing config", crawler.Params{Logger: logger.NewNoOp(), Sink: sink.NewMemory()}},
		{"missing logger", crawler.Params{Config: cfg, Sink: sink.NewMemory()}},
		{"missing sink", crawler.Params{Config: cfg, Logger: logger.NewNoOp()}},
		{"invalid config", crawler.Params{
			Config: crawlerconfig.New(crawlerconfig.WithMaxConcurrency(0)),
			Logger: logger.NewNoOp(),
			Sink:   sink.NewMemory(),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := crawler.New(tt.params)
			require.ErrorIs(t, err, crawler.ErrInvalidParams)
			assert.Nil(t, c)
		})
	}
}

func TestStart_MostRecent(t *testing.T) {
	t.Parallel()

	site := newFakeSite(t)
	mem := sink.NewMemory()
	c := newCrawler(t, site.server.URL, mem)

	require.NoError(t, c.Start(context.Background(), domain.ScrapeMostRecent))

	heavy := rankingsFor(mem.Rankings(), "Heavyweight")
	require.Len(t, heavy, 3)
	for i, r := range heavy {
		assert.Equal(t, i+1, r.Rank, "pagination order")
		assert.Equal(t, "2020-01-01", r.Date)
	}
	assert.Equal(t, "Jon+Jones/9617/", heavy[0].FighterID)
	require.NotNil(t, heavy[0].RankChange)
	assert.Equal(t, 0, *heavy[0].RankChange)
	assert.Nil(t, heavy[1].RankChange)
	assert.Equal(t, 1100, heavy[2].Points)

	lhw := rankingsFor(mem.Rankings(), "Light Heavyweight")
	require.Len(t, lhw, 1)
	assert.Equal(t, 2, *lhw[0].RankChange)

	fighters := mem.Fighters()
	require.Len(t, fighters, 3)
	ids := make(map[string]domain.Fighter)
	for _, f := range fighters {
		ids[f.FighterID] = f
	}
	require.Contains(t, ids, "Jon+Jones/9617/")
	assert.Equal(t, "Jon Jones", ids["Jon+Jones/9617/"].FighterName)
	require.NotNil(t, ids["Jon+Jones/9617/"].SherdogFighterID)
	assert.Equal(t, "Jon-Jones-1", *ids["Jon+Jones/9617/"].SherdogFighterID)
	assert.Nil(t, ids["Jon+Jones/9617/"].TapologyFighterID)

	// Every ranked fighter id resolves to a fighter record.
	for _, r := range mem.Rankings() {
		assert.Contains(t, ids, r.FighterID)
	}

	assert.Equal(t, 1, site.hitCount(extractor.FighterProfilePath+"Jon+Jones/9617/"), "profiles are fetched once")
	for _, d := range domain.Divisions() {
		assert.Equal(t, 1, site.hitCount(extractor.SnapshotsPath+"?Issue=101&Division="+strconv.Itoa(int(d))), d.Name())
	}

	summary := c.Metrics().Snapshot()
	assert.EqualValues(t, 4, summary.RankingsEmitted)
	assert.EqualValues(t, 3, summary.FightersEmitted)
	assert.EqualValues(t, 0, summary.Errors)
}

func TestStart_WomensDivisionsSkippedBefore2013(t *testing.T) {
	t.Parallel()

	site := newFakeSite(t)
	site.setIndex(testutils.IndexPage(testutils.IndexOption{Issue: "55", Date: "Jun 1, 2012"}))
	c := newCrawler(t, site.server.URL, sink.NewMemory())

	require.NoError(t, c.Start(context.Background(), domain.ScrapeMostRecent))

	for _, d := range domain.Divisions() {
		want := 1
		if d.IsWomens() {
			want = 0
		}
		assert.Equal(t, want, site.hitCount(extractor.SnapshotsPath+"?Issue=55&Division="+strconv.Itoa(int(d))), d.Name())
	}
}

func TestStart_RetriesTransientErrors(t *testing.T) {
	t.Parallel()

	site := newFakeSite(t)
	profile := extractor.FighterProfilePath + "Ciryl+Gane/144061/"
	var failures sync.Once
	site.override(profile, func(w http.ResponseWriter, r *http.Request) {
		served := false
		failures.Do(func() {
			w.WriteHeader(http.StatusServiceUnavailable)
			served = true
		})
		if !served {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(testutils.ProfilePage("Ciryl Gane")))
		}
	})

	mem := sink.NewMemory()
	c := newCrawler(t, site.server.URL, mem)

	require.NoError(t, c.Start(context.Background(), domain.ScrapeMostRecent))

	assert.Len(t, mem.Fighters(), 3)
	assert.Equal(t, 2, site.hitCount(profile))
	assert.EqualValues(t, 1, c.Metrics().Snapshot().Retries)
}

func TestStart_AbortsOnConsecutiveErrors(t *testing.T) {
	t.Parallel()

	site := newFakeSite(t)
	site.override(extractor.FighterProfilePath+"Jon+Jones/9617/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	mem := sink.NewMemory()
	c := newCrawler(t, site.server.URL, mem, crawlerconfig.WithMaxConsecutiveErrors(1))

	err := c.Start(context.Background(), domain.ScrapeMostRecent)
	require.ErrorIs(t, err, crawler.ErrTooManyErrors)
	assert.NotEmpty(t, mem.Rankings(), "records emitted before the abort are kept")
	assert.Equal(t, 1, site.hitCount(extractor.FighterProfilePath+"Jon+Jones/9617/"), "404 is not retried")
}

func TestStart_ToleratesErrorsWhenUnlimited(t *testing.T) {
	t.Parallel()

	site := newFakeSite(t)
	site.override(extractor.FighterProfilePath+"Jon+Jones/9617/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	mem := sink.NewMemory()
	c := newCrawler(t, site.server.URL, mem, crawlerconfig.WithMaxConsecutiveErrors(0))

	require.NoError(t, c.Start(context.Background(), domain.ScrapeMostRecent))
	assert.Len(t, mem.Rankings(), 4)
	assert.Len(t, mem.Fighters(), 2)
	assert.EqualValues(t, 1, c.Metrics().Snapshot().Errors)
}

func TestStart_MalformedIndexIsFatal(t *testing.T) {
	t.Parallel()

	site := newFakeSite(t)
	site.setIndex(`<html><body><p>maintenance</p></body></html>`)
	mem := sink.NewMemory()
	c := newCrawler(t, site.server.URL, mem)

	err := c.Start(context.Background(), domain.ScrapeAll)
	require.ErrorIs(t, err, crawler.ErrIndexFailed)
	require.ErrorIs(t, err, extractor.ErrMalformedIndex)
	assert.Empty(t, mem.Rankings())
}

func TestStart_IndexFetchFailureIsFatal(t *testing.T) {
	t.Parallel()

	site := newFakeSite(t)
	site.override(extractor.SnapshotsPath, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	c := newCrawler(t, site.server.URL, sink.NewMemory())

	err := c.Start(context.Background(), domain.ScrapeMostRecent)
	require.ErrorIs(t, err, crawler.ErrIndexFailed)
	assert.Equal(t, 3, site.hitCount(extractor.SnapshotsPath), "initial attempt plus two retries")
}

func TestStart_SinkFailureCountsAsError(t *testing.T) {
	t.Parallel()

	site := newFakeSite(t)
	broken := testutils.NewMockSink()
	broken.On("WriteRanking", mock.Anything, mock.Anything).Return(errors.New("disk full"))
	broken.On("WriteFighter", mock.Anything, mock.Anything).Return(nil)

	c := newCrawler(t, site.server.URL, broken)

	err := c.Start(context.Background(), domain.ScrapeMostRecent)
	require.ErrorIs(t, err, crawler.ErrTooManyErrors)
	assert.Contains(t, err.Error(), "disk full")
}

func TestStart_ContextCancelled(t *testing.T) {
	t.Parallel()

	site := newFakeSite(t)
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	reached := make(chan struct{}, len(domain.Divisions()))
	for _, d := range domain.Divisions() {
		site.override(extractor.SnapshotsPath+"?Issue=101&Division="+strconv.Itoa(int(d)), func(_ http.ResponseWriter, r *http.Request) {
			reached <- struct{}{}
			select {
			case <-r.Context().Done():
			case <-release:
			}
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := newCrawler(t, site.server.URL, sink.NewMemory())
	errCh := make(chan error, 1)
	go func() { errCh <- c.Start(ctx, domain.ScrapeMostRecent) }()

	select {
	case <-reached:
	case <-time.After(5 * time.Second):
		t.Fatal("ranking page was never requested")
	}
	cancel()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(15 * time.Second):
		t.Fatal("Start did not return after cancellation")
	}
}

func TestStart_InvalidScrapeType(t *testing.T) {
	t.Parallel()

	site := newFakeSite(t)
	c := newCrawler(t, site.server.URL, sink.NewMemory())

	err := c.Start(context.Background(), domain.ScrapeType("weekly"))
	require.ErrorIs(t, err, domain.ErrInvalidScrapeType)
	assert.Zero(t, site.hitCount(extractor.SnapshotsPath), "no request is issued for an invalid mode")
}

func TestIsTransientCrawlError(t *testing.T) {
	t.Parallel()

	c := newCrawler(t, "http://127.0.0.1:1", sink.NewMemory())
	tests := []struct {
		name   string
		status int
		err    error
		want   bool
	}{
		{"service unavailable", http.StatusServiceUnavailable, errors.New("Service Unavailable"), true},
		{"too many requests", http.StatusTooManyRequests, errors.New("Too Many Requests"), true},
		{"request timeout", http.StatusRequestTimeout, errors.New("Request Timeout"), true},
		{"connection refused", 0, errors.New("dial tcp: connect: connection refused"), true},
		{"not found", http.StatusNotFound, errors.New("Not Found"), false},
		{"forbidden", http.StatusForbidden, errors.New("Forbidden"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := crawler.IsTransientCrawlError(c, &colly.Response{StatusCode: tt.status}, tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

