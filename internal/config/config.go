// Package config provides configuration management for fightcrawl.
// It handles loading, validation, and access to configuration values from
// YAML files, .env files and environment variables through viper.
package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/jonesrussell/fightcrawl/internal/config/crawler"
	dbconfig "github.com/jonesrussell/fightcrawl/internal/config/database"
	"github.com/jonesrussell/fightcrawl/internal/config/elasticsearch"
	"github.com/jonesrussell/fightcrawl/internal/config/logging"
	"github.com/jonesrussell/fightcrawl/internal/config/output"
)

// Config represents the application configuration.
type Config struct {
	// Crawler holds crawl driver configuration
	Crawler *crawler.Config `yaml:"crawler"`
	// Logging holds logger configuration
	Logging *logging.Config `yaml:"logging"`
	// Output selects the record sinks
	Output *output.Config `yaml:"output"`
	// Database holds PostgreSQL sink configuration
	Database *dbconfig.Config `yaml:"database"`
	// Elasticsearch holds Elasticsearch sink configuration
	Elasticsearch *elasticsearch.Config `yaml:"elasticsearch"`
}

// New returns a configuration populated with defaults.
func New() *Config {
	return &Config{
		Crawler:       crawler.New(),
		Logging:       logging.New(),
		Output:        output.New(),
		Database:      dbconfig.New(),
		Elasticsearch: elasticsearch.New(),
	}
}

// Validate validates every section. Database and Elasticsearch settings are
// only checked when their sink is enabled.
func (c *Config) Validate() error {
	if err := c.Crawler.Validate(); err != nil {
		return &ValidationError{Section: "crawler", Err: err}
	}
	if err := c.Logging.Validate(); err != nil {
		return &ValidationError{Section: "logging", Err: err}
	}
	if err := c.Output.Validate(); err != nil {
		return &ValidationError{Section: "output", Err: err}
	}
	if c.Output.Enabled(output.SinkPostgres) {
		if err := c.Database.Validate(); err != nil {
			return &ValidationError{Section: "database", Err: err}
		}
	}
	if c.Output.Enabled(output.SinkElasticsearch) {
		if err := c.Elasticsearch.Validate(); err != nil {
			return &ValidationError{Section: "elasticsearch", Err: err}
		}
	}
	return nil
}

// SetDefaults registers every key with its default so that environment
// variables are picked up for keys absent from the config file.
func SetDefaults(v *viper.Viper) {
	d := New()

	v.SetDefault("crawler.base_url", d.Crawler.BaseURL)
	v.SetDefault("crawler.max_concurrency", d.Crawler.MaxConcurrency)
	v.SetDefault("crawler.request_timeout", d.Crawler.RequestTimeout)
	v.SetDefault("crawler.user_agent", d.Crawler.UserAgent)
	v.SetDefault("crawler.use_random_user_agent", d.Crawler.UseRandomUserAgent)
	v.SetDefault("crawler.respect_robots_txt", d.Crawler.RespectRobotsTxt)
	v.SetDefault("crawler.delay", d.Crawler.Delay)
	v.SetDefault("crawler.random_delay", d.Crawler.RandomDelay)
	v.SetDefault("crawler.max_body_size", d.Crawler.MaxBodySize)
	v.SetDefault("crawler.max_retries", d.Crawler.MaxRetries)
	v.SetDefault("crawler.retry_delay", d.Crawler.RetryDelay)
	v.SetDefault("crawler.max_consecutive_errors", d.Crawler.MaxConsecutiveErrors)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.encoding", d.Logging.Encoding)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("logging.debug", d.Logging.Debug)

	v.SetDefault("output.sinks", d.Output.Sinks)
	v.SetDefault("output.dir", d.Output.Dir)

	v.SetDefault("database.host", d.Database.Host)
	v.SetDefault("database.port", d.Database.Port)
	v.SetDefault("database.user", d.Database.User)
	v.SetDefault("database.password", d.Database.Password)
	v.SetDefault("database.dbname", d.Database.DBName)
	v.SetDefault("database.sslmode", d.Database.SSLMode)
	v.SetDefault("database.max_open_conns", d.Database.MaxOpenConns)
	v.SetDefault("database.max_idle_conns", d.Database.MaxIdleConns)
	v.SetDefault("database.conn_max_lifetime", d.Database.ConnMaxLifetime)

	v.SetDefault("elasticsearch.addresses", d.Elasticsearch.Addresses)
	v.SetDefault("elasticsearch.api_key", d.Elasticsearch.APIKey)
	v.SetDefault("elasticsearch.username", d.Elasticsearch.Username)
	v.SetDefault("elasticsearch.password", d.Elasticsearch.Password)
	v.SetDefault("elasticsearch.rankings_index", d.Elasticsearch.RankingsIndex)
	v.SetDefault("elasticsearch.fighters_index", d.Elasticsearch.FightersIndex)
}

// Load decodes the settings held by v into a Config and validates it.
// SetDefaults must have been called on v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := New()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "yaml",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	if decodeErr := decoder.Decode(v.AllSettings()); decodeErr != nil {
		return nil, &LoadError{Err: decodeErr}
	}

	applyBackwardCompatibility(cfg)

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return cfg, nil
}

// applyBackwardCompatibility honours ELASTICSEARCH_HOSTS when no addresses
// were configured explicitly.
func applyBackwardCompatibility(cfg *Config) {
	if os.Getenv("ELASTICSEARCH_ADDRESSES") != "" {
		return
	}
	if hosts := os.Getenv("ELASTICSEARCH_HOSTS"); hosts != "" {
		cfg.Elasticsearch.Addresses = elasticsearch.ParseAddressesFromString(hosts)
	}
}

// String renders the effective configuration with secrets masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"crawler{base_url=%s concurrency=%d retries=%d max_consecutive_errors=%d} output{sinks=%v dir=%s}",
		c.Crawler.BaseURL, c.Crawler.MaxConcurrency, c.Crawler.MaxRetries,
		c.Crawler.MaxConsecutiveErrors, c.Output.Sinks, c.Output.Dir,
	)
}
