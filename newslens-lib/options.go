// ABOUTME: Configuration options for the newslens library client
// ABOUTME: Functional options for dependencies, fetch settings and pipeline tuning

package newslens

import (
	"time"

	"newslens-api/core/interfaces"
	"newslens-api/pkg/config"
	"newslens-api/pkg/featureflags"
)

// Config holds the configuration for the client
type Config struct {
	// Cache memoises resolutions and extractions
	Cache interfaces.Cache

	// CacheTTL applies to every cached entry
	CacheTTL time.Duration

	// Fetcher is the network primitive; built from Fetch when nil
	Fetcher interfaces.Fetcher

	// Fetch holds executor defaults
	Fetch config.FetchConfig

	// Pipeline holds reader, resolver and extractor settings
	Pipeline config.PipelineConfig

	// Logger receives structured log output
	Logger interfaces.Logger

	// Flags toggles optional strategies
	Flags featureflags.Manager

	cacheOption   CacheOption
	cacheDisabled bool
}

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithCache sets a custom cache implementation
func WithCache(cache interfaces.Cache) Option {
	return func(c *Config) error {
		c.Cache = cache
		c.cacheDisabled = false
		return nil
	}
}

// WithoutCache disables caching entirely
func WithoutCache() Option {
	return func(c *Config) error {
		c.Cache = nil
		c.cacheDisabled = true
		return nil
	}
}

// WithCacheTTL sets how long resolutions and extractions are kept
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Config) error {
		if ttl <= 0 {
			return NewError(ErrorTypeConfiguration, "cache TTL must be positive").
				WithContext("ttl", ttl.String())
		}
		c.CacheTTL = ttl
		return nil
	}
}

// WithFetcher sets a custom fetcher
func WithFetcher(fetcher interfaces.Fetcher) Option {
	return func(c *Config) error {
		c.Fetcher = fetcher
		return nil
	}
}

// WithFetchConfig sets timeouts, retries and redirect limits
func WithFetchConfig(fetch config.FetchConfig) Option {
	return func(c *Config) error {
		c.Fetch = fetch
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithQuietMode configures the client to suppress all log output
func WithQuietMode() Option {
	return func(c *Config) error {
		c.Logger = QuietLogger()
		return nil
	}
}

// WithFlags sets the feature flag manager
func WithFlags(flags featureflags.Manager) Option {
	return func(c *Config) error {
		c.Flags = flags
		return nil
	}
}

// WithItemDelay sets the pause between items of a search batch
func WithItemDelay(delay time.Duration) Option {
	return func(c *Config) error {
		if delay < 0 {
			return NewError(ErrorTypeConfiguration, "item delay cannot be negative")
		}
		c.Pipeline.ItemDelay = delay
		return nil
	}
}

// WithAggregatorHosts replaces the hosts whose links need resolving
func WithAggregatorHosts(hosts ...string) Option {
	return func(c *Config) error {
		if len(hosts) == 0 {
			return NewError(ErrorTypeConfiguration, "at least one aggregator host is required")
		}
		c.Pipeline.AggregatorHosts = hosts
		return nil
	}
}

// WithEndpoints points the reader at a different feed and search host
func WithEndpoints(feedBaseURL, searchBaseURL string) Option {
	return func(c *Config) error {
		c.Pipeline.FeedBaseURL = feedBaseURL
		c.Pipeline.SearchBaseURL = searchBaseURL
		return nil
	}
}

// WithImageCap bounds the number of images kept per article
func WithImageCap(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewError(ErrorTypeConfiguration, "image cap must be at least 1")
		}
		c.Pipeline.ImageCap = n
		return nil
	}
}

// WithSettings applies a loaded application configuration: fetch and
// pipeline settings, cache TTL and the cache backend
func WithSettings(cfg *config.Config) Option {
	return func(c *Config) error {
		if cfg == nil {
			return NewError(ErrorTypeConfiguration, "settings cannot be nil")
		}
		c.Fetch = cfg.Fetch
		c.Pipeline = cfg.Pipeline
		c.CacheTTL = cfg.Cache.TTL
		return WithCacheOption(CacheOption{
			Type:     CacheType(cfg.Cache.Type),
			FilePath: cfg.Cache.SQLite.Path,
			Redis:    cfg.Cache.Redis,
		})(c)
	}
}
