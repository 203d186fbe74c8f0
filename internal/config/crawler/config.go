// Package crawler holds the settings of the FightMatrix crawl driver:
// target origin, politeness, concurrency, retries and the early-abort policy.
package crawler

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Default configuration values
const (
	DefaultBaseURL        = "https://www.fightmatrix.com"
	DefaultMaxConcurrency = 10
	DefaultUserAgent      = "fightcrawl/1.0"
	DefaultTimeout        = 30 * time.Second
	DefaultMaxBodySize    = 10 * 1024 * 1024 // 10MB
	DefaultMaxRetries     = 5
	DefaultRetryDelay     = 1 * time.Second
	// DefaultMaxConsecutiveErrors stops the crawl on the first unrecovered error.
	DefaultMaxConsecutiveErrors = 1
)

// Config represents the crawler configuration.
type Config struct {
	// BaseURL is the site origin; overridden in tests to point at a local server
	BaseURL string `env:"CRAWLER_BASE_URL" yaml:"base_url"`
	// MaxConcurrency is the maximum number of concurrent requests
	MaxConcurrency int `env:"CRAWLER_MAX_CONCURRENCY" yaml:"max_concurrency"`
	// RequestTimeout is the timeout for each request
	RequestTimeout time.Duration `env:"CRAWLER_REQUEST_TIMEOUT" yaml:"request_timeout"`
	// UserAgent is used when UseRandomUserAgent is false
	UserAgent string `env:"CRAWLER_USER_AGENT" yaml:"user_agent"`
	// UseRandomUserAgent rotates browser user agents per request
	UseRandomUserAgent bool `env:"CRAWLER_USE_RANDOM_USER_AGENT" yaml:"use_random_user_agent"`
	// RespectRobotsTxt indicates whether to respect robots.txt
	RespectRobotsTxt bool `env:"CRAWLER_RESPECT_ROBOTS_TXT" yaml:"respect_robots_txt"`
	// Delay is the delay between requests
	Delay time.Duration `env:"CRAWLER_DELAY" yaml:"delay"`
	// RandomDelay is the random delay to add to the base delay
	RandomDelay time.Duration `env:"CRAWLER_RANDOM_DELAY" yaml:"random_delay"`
	// MaxBodySize is the maximum response body size in bytes (0 = colly default)
	MaxBodySize int `env:"CRAWLER_MAX_BODY_SIZE" yaml:"max_body_size"`
	// MaxRetries is the number of retries for transient fetch failures
	MaxRetries int `env:"CRAWLER_MAX_RETRIES" yaml:"max_retries"`
	// RetryDelay is the delay before each retry
	RetryDelay time.Duration `env:"CRAWLER_RETRY_DELAY" yaml:"retry_delay"`
	// MaxConsecutiveErrors aborts the crawl after this many errors in a row (0 = never)
	MaxConsecutiveErrors int `env:"CRAWLER_MAX_CONSECUTIVE_ERRORS" yaml:"max_consecutive_errors"`
}

// New creates a new crawler configuration with the given options.
func New(opts ...Option) *Config {
	cfg := &Config{
		BaseURL:              DefaultBaseURL,
		MaxConcurrency:       DefaultMaxConcurrency,
		RequestTimeout:       DefaultTimeout,
		UserAgent:            DefaultUserAgent,
		UseRandomUserAgent:   true,
		RespectRobotsTxt:     false,
		MaxBodySize:          DefaultMaxBodySize,
		MaxRetries:           DefaultMaxRetries,
		RetryDelay:           DefaultRetryDelay,
		MaxConsecutiveErrors: DefaultMaxConsecutiveErrors,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// Validate validates the crawler configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute URL, got %q", c.BaseURL)
	}
	if c.MaxConcurrency < 1 {
		return errors.New("max_concurrency must be positive")
	}
	if c.RequestTimeout < 0 {
		return errors.New("request_timeout must be non-negative")
	}
	if c.Delay < 0 {
		return errors.New("delay must be non-negative")
	}
	if c.RandomDelay < 0 {
		return errors.New("random_delay must be non-negative")
	}
	if c.MaxBodySize < 0 {
		return errors.New("max_body_size must be non-negative")
	}
	if c.MaxRetries < 0 {
		return errors.New("max_retries must be non-negative")
	}
	if c.RetryDelay < 0 {
		return errors.New("retry_delay must be non-negative")
	}
	if c.MaxConsecutiveErrors < 0 {
		return errors.New("max_consecutive_errors must be non-negative")
	}
	if !c.UseRandomUserAgent && c.UserAgent == "" {
		return errors.New("user_agent is required when use_random_user_agent is false")
	}
	return nil
}

// Option is a function that configures a crawler configuration.
type Option func(*Config)

// WithBaseURL sets the site origin.
func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.BaseURL = baseURL
	}
}

// WithMaxConcurrency sets the maximum concurrency.
func WithMaxConcurrency(concurrency int) Option {
	return func(c *Config) {
		c.MaxConcurrency = concurrency
	}
}

// WithRequestTimeout sets the request timeout.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.RequestTimeout = timeout
	}
}

// WithUserAgent sets a fixed user agent and disables rotation.
func WithUserAgent(agent string) Option {
	return func(c *Config) {
		c.UserAgent = agent
		c.UseRandomUserAgent = false
	}
}

// WithDelay sets the delay between requests.
func WithDelay(delay time.Duration) Option {
	return func(c *Config) {
		c.Delay = delay
	}
}

// WithRetries sets the retry count and the delay before each retry.
func WithRetries(maxRetries int, delay time.Duration) Option {
	return func(c *Config) {
		c.MaxRetries = maxRetries
		c.RetryDelay = delay
	}
}

// WithMaxConsecutiveErrors sets the early-abort threshold.
func WithMaxConsecutiveErrors(n int) Option {
	return func(c *Config) {
		c.MaxConsecutiveErrors = n
	}
}
