// ABOUTME: Default implementations for library dependencies
// ABOUTME: Provides factory functions for the fetcher, logger and cache backends

package newslens

import (
	"io"
	"os"
	"time"

	"newslens-api/core/interfaces"
	"newslens-api/infrastructure/cache/memory"
	"newslens-api/infrastructure/cache/redis"
	"newslens-api/infrastructure/cache/sqlite"
	stdhttp "newslens-api/infrastructure/http/standard"
	"newslens-api/infrastructure/logger/structured"
	"newslens-api/pkg/config"
)

// memoryCleanupInterval is how often expired memory entries are purged
const memoryCleanupInterval = 10 * time.Minute

// defaultConfig mirrors the application defaults
func defaultConfig() Config {
	return Config{
		CacheTTL: 6 * time.Hour,
		Fetch: config.FetchConfig{
			Timeout:      15 * time.Second,
			MaxRetries:   3,
			RetryDelay:   time.Second,
			MaxRedirects: 10,
			MaxBodyBytes: 5 * 1024 * 1024,
		},
		Pipeline: config.PipelineConfig{
			ItemDelay:       500 * time.Millisecond,
			ImageCap:        8,
			AggregatorHosts: config.DefaultAggregatorHosts,
			FeedBaseURL:     "https://news.google.com",
			SearchBaseURL:   "https://news.google.com",
		},
		cacheOption: CacheOption{Type: CacheTypeMemory},
	}
}

// validateConfig rejects settings the pipeline cannot run with
func validateConfig(c *Config) error {
	switch {
	case c.Fetch.Timeout <= 0:
		return NewError(ErrorTypeConfiguration, "fetch timeout must be positive")
	case c.Fetch.MaxRetries < 1:
		return NewError(ErrorTypeConfiguration, "fetch max retries must be at least 1")
	case c.Pipeline.FeedBaseURL == "":
		return NewError(ErrorTypeConfiguration, "feed base URL cannot be empty")
	case len(c.Pipeline.AggregatorHosts) == 0:
		return NewError(ErrorTypeConfiguration, "at least one aggregator host is required")
	}
	return nil
}

// DefaultFetcher creates the standard retrying fetcher
func DefaultFetcher(fetch config.FetchConfig, logger interfaces.Logger) interfaces.Fetcher {
	return stdhttp.NewStandardHTTPClient(stdhttp.Config{
		Timeout:      fetch.Timeout,
		MaxRetries:   fetch.MaxRetries,
		RetryDelay:   fetch.RetryDelay,
		MaxRedirects: fetch.MaxRedirects,
		MaxBodyBytes: fetch.MaxBodyBytes,
	}, logger)
}

// DefaultLogger creates a text logger on stderr
func DefaultLogger() interfaces.Logger {
	return structured.New(structured.Options{Level: "info", Format: "text", Output: os.Stderr})
}

// QuietLogger creates a logger that discards all output
func QuietLogger() interfaces.Logger {
	return structured.New(structured.Options{Level: "error", Output: io.Discard})
}

// CacheType names a cache backend
type CacheType string

const (
	CacheTypeNone   CacheType = "none"
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
	CacheTypeSQLite CacheType = "sqlite"
)

// CacheOption selects and configures a cache backend
type CacheOption struct {
	Type     CacheType
	FilePath string // For SQLite cache
	Redis    config.RedisConfig
}

// WithCacheOption selects a cache backend; it is opened by NewClient
func WithCacheOption(opt CacheOption) Option {
	return func(c *Config) error {
		switch opt.Type {
		case CacheTypeNone:
			c.Cache = nil
			c.cacheDisabled = true
			return nil
		case CacheTypeMemory, CacheTypeSQLite:
		case CacheTypeRedis:
			if opt.Redis.Address == "" {
				return NewError(ErrorTypeConfiguration, "redis address cannot be empty")
			}
		default:
			return NewError(ErrorTypeConfiguration, "invalid cache type").
				WithContext("type", string(opt.Type))
		}
		if opt.Type == CacheTypeSQLite && opt.FilePath == "" {
			opt.FilePath = "newslens_cache.db"
		}
		c.Cache = nil
		c.cacheDisabled = false
		c.cacheOption = opt
		return nil
	}
}

// openCache opens the selected backend. An unreachable Redis falls back
// to memory so the client still works.
func openCache(opt CacheOption, logger interfaces.Logger) (interfaces.Cache, func() error, error) {
	switch opt.Type {
	case CacheTypeRedis:
		c, err := redis.NewRedisCache(opt.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"address": opt.Redis.Address,
				"error":   err.Error(),
			})
			return memory.NewMemoryCacheWithCleanup(memoryCleanupInterval), nil, nil
		}
		logger.Info("Using Redis cache", map[string]interface{}{"address": opt.Redis.Address})
		return c, c.Close, nil
	case CacheTypeSQLite:
		c, err := sqlite.NewSQLiteCache(opt.FilePath, logger)
		if err != nil {
			return nil, nil, NewError(ErrorTypeConfiguration, "open sqlite cache").WithCause(err)
		}
		logger.Info("Using SQLite cache", map[string]interface{}{"path": opt.FilePath})
		return c, c.Close, nil
	default:
		logger.Debug("Using memory cache", nil)
		return memory.NewMemoryCacheWithCleanup(memoryCleanupInterval), nil, nil
	}
}
