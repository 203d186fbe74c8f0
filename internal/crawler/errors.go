package crawler

import "errors"

// Error types for the crawler package.
var (
	// ErrInvalidParams is returned by New when a required dependency is missing.
	ErrInvalidParams = errors.New("invalid crawler parameters")

	// ErrTooManyErrors is returned by Start when the consecutive error limit is reached.
	ErrTooManyErrors = errors.New("too many consecutive errors")

	// ErrAlreadyRunning is returned when Start is called while a crawl is in progress.
	ErrAlreadyRunning = errors.New("crawl already running")

	// ErrIndexFailed wraps a failure to fetch or extract the snapshot index.
	ErrIndexFailed = errors.New("snapshot index failed")
)
