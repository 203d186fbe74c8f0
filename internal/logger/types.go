// Package logger provides structured logging for fightcrawl.
package logger

// Level represents the logging level.
type Level string

const (
	// DebugLevel logs debug messages.
	DebugLevel Level = "debug"
	// InfoLevel logs info messages.
	InfoLevel Level = "info"
	// WarnLevel logs warning messages.
	WarnLevel Level = "warn"
	// ErrorLevel logs error messages.
	ErrorLevel Level = "error"
	// FatalLevel logs fatal messages and exits.
	FatalLevel Level = "fatal"
)

// Config represents the logger configuration.
type Config struct {
	// Level is the minimum logging level.
	Level Level `yaml:"level" json:"level"`
	// Development enables development mode (colored levels, short timestamps).
	Development bool `yaml:"development" json:"development"`
	// Encoding is either "console" or "json".
	Encoding string `yaml:"encoding" json:"encoding"`
	// Output is "stdout" or "stderr".
	Output string `yaml:"output" json:"output"`
}
