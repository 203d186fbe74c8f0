// Package output selects where crawl records are written.
package output

import (
	"errors"
	"fmt"
	"strings"
)

// Sink names accepted in Sinks.
const (
	SinkJSONL         = "jsonl"
	SinkPostgres      = "postgres"
	SinkElasticsearch = "elasticsearch"
	SinkMemory        = "memory"
)

// DefaultDir is where JSON Lines files are written.
const DefaultDir = "data"

// Config represents output configuration.
type Config struct {
	// Sinks lists the enabled sinks; records go to all of them
	Sinks []string `env:"OUTPUT_SINKS" yaml:"sinks"`
	// Dir is the JSON Lines output directory
	Dir string `env:"OUTPUT_DIR" yaml:"dir"`
}

// New returns the default output configuration.
func New() *Config {
	return &Config{
		Sinks: []string{SinkJSONL},
		Dir:   DefaultDir,
	}
}

// Validate validates the output configuration.
func (c *Config) Validate() error {
	if len(c.Sinks) == 0 {
		return errors.New("at least one sink is required")
	}
	seen := make(map[string]bool, len(c.Sinks))
	for _, s := range c.Sinks {
		switch s {
		case SinkJSONL, SinkPostgres, SinkElasticsearch, SinkMemory:
		default:
			return fmt.Errorf("unknown sink %q (want one of %s)", s,
				strings.Join([]string{SinkJSONL, SinkPostgres, SinkElasticsearch, SinkMemory}, ", "))
		}
		if seen[s] {
			return fmt.Errorf("sink %q listed twice", s)
		}
		seen[s] = true
	}
	if seen[SinkJSONL] && c.Dir == "" {
		return errors.New("dir is required for the jsonl sink")
	}
	return nil
}

// Enabled reports whether the named sink is selected.
func (c *Config) Enabled(name string) bool {
	for _, s := range c.Sinks {
		if s == name {
			return true
		}
	}
	return false
}
