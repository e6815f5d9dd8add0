package standard

import "time"

// Default fetch configuration values
const (
	defaultTimeout      = 15 * time.Second
	defaultMaxRetries   = 3
	defaultRetryDelay   = time.Second
	defaultMaxRedirects = 10
	defaultMaxBodyBytes = 5 * 1024 * 1024 // 5MB
)

// Config holds executor-wide defaults. Per-call FetchOptions override
// any non-zero field.
type Config struct {
	Timeout      time.Duration
	MaxRetries   int
	RetryDelay   time.Duration
	MaxRedirects int
	MaxBodyBytes int64
	UserAgents   []string
}

// WithDefaults returns a copy of the config with default values applied for zero-value fields.
func (c Config) WithDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = defaultRetryDelay
	}
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = defaultMaxRedirects
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = defaultMaxBodyBytes
	}
	if len(c.UserAgents) == 0 {
		c.UserAgents = userAgents
	}
	return c
}
