package logger

// Default configuration values.
const (
	// DefaultLevel is the default logging level.
	DefaultLevel = InfoLevel
	// DefaultEncoding is the default log encoding format.
	DefaultEncoding = "console"
	// DefaultOutput is the default output stream.
	DefaultOutput = "stdout"
)

// Field keys shared by the With* helpers.
const (
	fieldError     = "error"
	fieldComponent = "component"
	fieldDuration  = "duration"
	fieldRunID     = "run_id"
	fieldURL       = "url"
)
