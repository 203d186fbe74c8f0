// Package elasticsearch provides Elasticsearch configuration management.
package elasticsearch

import (
	"fmt"
	"strings"
)

// Default configuration values
const (
	DefaultAddresses     = "http://127.0.0.1:9200"
	DefaultRankingsIndex = "fightmatrix_rankings"
	DefaultFightersIndex = "fightmatrix_fighters"
)

// Error codes for configuration validation
const (
	ErrCodeEmptyAddresses = "EMPTY_ADDRESSES"
	ErrCodeEmptyIndexName = "EMPTY_INDEX_NAME"
	ErrCodeInvalidAuth    = "INVALID_AUTH"
)

// ConfigError represents a configuration validation error
type ConfigError struct {
	Code    string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Config represents Elasticsearch configuration settings.
type Config struct {
	// Addresses is a list of Elasticsearch node addresses
	Addresses []string `env:"ELASTICSEARCH_ADDRESSES" yaml:"addresses"`
	// APIKey is the base64 encoded API key for authentication
	APIKey string `env:"ELASTICSEARCH_API_KEY" yaml:"api_key"`
	// Username is the username for basic authentication
	Username string `env:"ELASTICSEARCH_USERNAME" yaml:"username"`
	// Password is the password for basic authentication
	Password string `env:"ELASTICSEARCH_PASSWORD" yaml:"password"`
	// RankingsIndex receives ranking snapshot records
	RankingsIndex string `env:"ELASTICSEARCH_RANKINGS_INDEX" yaml:"rankings_index"`
	// FightersIndex receives fighter identity records
	FightersIndex string `env:"ELASTICSEARCH_FIGHTERS_INDEX" yaml:"fighters_index"`
}

// New returns the default Elasticsearch configuration.
func New() *Config {
	return &Config{
		Addresses:     []string{DefaultAddresses},
		RankingsIndex: DefaultRankingsIndex,
		FightersIndex: DefaultFightersIndex,
	}
}

// Validate validates the Elasticsearch configuration.
func (c *Config) Validate() error {
	if len(c.Addresses) == 0 {
		return &ConfigError{Code: ErrCodeEmptyAddresses, Message: "at least one address is required"}
	}
	if c.RankingsIndex == "" || c.FightersIndex == "" {
		return &ConfigError{Code: ErrCodeEmptyIndexName, Message: "rankings_index and fighters_index are required"}
	}
	if c.APIKey != "" && (c.Username != "" || c.Password != "") {
		return &ConfigError{Code: ErrCodeInvalidAuth, Message: "use either api_key or username/password, not both"}
	}
	return nil
}

// ParseAddressesFromString splits a comma-separated address list.
func ParseAddressesFromString(s string) []string {
	var out []string
	for _, a := range strings.Split(s, ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
