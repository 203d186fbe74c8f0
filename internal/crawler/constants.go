package crawler

import "time"

// Request context keys.
const (
	kindKey       = "kind"
	taskKey       = "task"
	retryCountKey = "retry_count"
)

// Page kinds stored under kindKey; OnResponse dispatches on them.
const (
	kindIndex   = "index"
	kindRanking = "ranking"
	kindFighter = "fighter"
)

// collectorStopTimeout bounds the wait for in-flight requests after cancellation.
const collectorStopTimeout = 10 * time.Second

// randomUserAgents is a small set of desktop browser user agents for UseRandomUserAgent.
var randomUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
}
