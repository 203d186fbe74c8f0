package logging

import (
	"fmt"

	"github.com/jonesrussell/fightcrawl/internal/logger"
)

// Default configuration values
const (
	DefaultLevel    = "info"
	DefaultEncoding = "console"
	DefaultOutput   = "stdout"
)

// Config holds logging-specific configuration settings.
type Config struct {
	// Level is the logging level (debug, info, warn, error)
	Level string `yaml:"level"`
	// Encoding is the log encoding format (json, console)
	Encoding string `yaml:"encoding"`
	// Output is the log output destination (stdout, stderr)
	Output string `yaml:"output"`
	// Debug enables development mode logging
	Debug bool `yaml:"debug"`
}

// New returns the default logging configuration.
func New() *Config {
	return &Config{
		Level:    DefaultLevel,
		Encoding: DefaultEncoding,
		Output:   DefaultOutput,
	}
}

// Validate validates the logging configuration.
func (c *Config) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Level)
	}
	switch c.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log encoding: %q", c.Encoding)
	}
	switch c.Output {
	case "stdout", "stderr":
	default:
		return fmt.Errorf("invalid log output: %q", c.Output)
	}
	return nil
}

// LoggerConfig converts to the logger package configuration. Debug forces
// the debug level.
func (c *Config) LoggerConfig() *logger.Config {
	level := logger.Level(c.Level)
	if c.Debug {
		level = logger.DebugLevel
	}
	return &logger.Config{
		Level:       level,
		Development: c.Debug,
		Encoding:    c.Encoding,
		Output:      c.Output,
	}
}
