package extractor

// Internal helpers exposed for tests.
var (
	ParseRankChange = parseRankChange
	LastSegment     = lastSegment
)
