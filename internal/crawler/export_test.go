package crawler

// Test exports for internal functions.

// IsTransientCrawlError exports isTransientCrawlError for testing.
var IsTransientCrawlError = (*Crawler).isTransientCrawlError
