// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, cache, fetching and the pipeline

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Fetch contains executor retry and timeout settings
	Fetch FetchConfig

	// Pipeline contains reader, resolver and extractor settings
	Pipeline PipelineConfig

	// Log contains logger settings
	Log LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimit is the sustained requests per second allowed per client IP
	RateLimit float64

	// RateBurst is the burst size per client IP
	RateBurst int
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (none/memory/redis/sqlite)
	Type string

	// TTL applies to resolutions and extractions
	TTL time.Duration

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string
}

// FetchConfig holds the executor defaults
type FetchConfig struct {
	Timeout      time.Duration
	MaxRetries   int
	RetryDelay   time.Duration
	MaxRedirects int
	MaxBodyBytes int64
}

// PipelineConfig holds settings for discovery, resolution and extraction
type PipelineConfig struct {
	// ItemDelay is the pause between items of a batch
	ItemDelay time.Duration

	// ImageCap bounds the number of images per article
	ImageCap int

	// AggregatorHosts are the hosts whose links need resolving
	AggregatorHosts []string

	// FeedBaseURL is the base of the RSS search feed
	FeedBaseURL string

	// SearchBaseURL is the base of the rendered search page
	SearchBaseURL string
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// DefaultAggregatorHosts lists the aggregators resolved by default
var DefaultAggregatorHosts = []string{
	"news.google.com",
	"www.google.com",
	"google.com",
	"bing.com",
	"news.yahoo.com",
	"msn.com",
}

// setDefaults registers default values for every key
func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8000")
	v.SetDefault("RATE_LIMIT", 1.0)
	v.SetDefault("RATE_BURST", 5)

	v.SetDefault("CACHE_TYPE", "memory")
	v.SetDefault("CACHE_TTL", "6h")
	v.SetDefault("REDIS_ADDRESS", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SQLITE_PATH", "newslens_cache.db")

	v.SetDefault("FETCH_TIMEOUT", "15s")
	v.SetDefault("FETCH_MAX_RETRIES", 3)
	v.SetDefault("FETCH_RETRY_DELAY", "1s")
	v.SetDefault("FETCH_MAX_REDIRECTS", 10)
	v.SetDefault("FETCH_MAX_BODY_BYTES", 5*1024*1024)

	v.SetDefault("ITEM_DELAY", "500ms")
	v.SetDefault("IMAGE_CAP", 8)
	v.SetDefault("AGGREGATOR_HOSTS", strings.Join(DefaultAggregatorHosts, ","))
	v.SetDefault("FEED_BASE_URL", "https://news.google.com")
	v.SetDefault("SEARCH_BASE_URL", "https://news.google.com")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_FILE", "")
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	return Load("")
}

// Load reads an optional config file, then lets environment variables
// override it. File keys use the environment names, e.g. "port".
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:      v.GetString("PORT"),
			RateLimit: v.GetFloat64("RATE_LIMIT"),
			RateBurst: v.GetInt("RATE_BURST"),
		},
		Cache: CacheConfig{
			Type: strings.ToLower(v.GetString("CACHE_TYPE")),
			TTL:  v.GetDuration("CACHE_TTL"),
			Redis: RedisConfig{
				Address:  v.GetString("REDIS_ADDRESS"),
				Password: v.GetString("REDIS_PASSWORD"),
				DB:       v.GetInt("REDIS_DB"),
			},
			SQLite: SQLiteConfig{
				Path: v.GetString("SQLITE_PATH"),
			},
		},
		Fetch: FetchConfig{
			Timeout:      v.GetDuration("FETCH_TIMEOUT"),
			MaxRetries:   v.GetInt("FETCH_MAX_RETRIES"),
			RetryDelay:   v.GetDuration("FETCH_RETRY_DELAY"),
			MaxRedirects: v.GetInt("FETCH_MAX_REDIRECTS"),
			MaxBodyBytes: v.GetInt64("FETCH_MAX_BODY_BYTES"),
		},
		Pipeline: PipelineConfig{
			ItemDelay:       v.GetDuration("ITEM_DELAY"),
			ImageCap:        v.GetInt("IMAGE_CAP"),
			AggregatorHosts: splitList(v.GetString("AGGREGATOR_HOSTS")),
			FeedBaseURL:     strings.TrimRight(v.GetString("FEED_BASE_URL"), "/"),
			SearchBaseURL:   strings.TrimRight(v.GetString("SEARCH_BASE_URL"), "/"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			File:   v.GetString("LOG_FILE"),
		},
	}
}

// splitList parses a comma separated list, dropping empty entries
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimit <= 0 || c.Server.RateBurst < 1 {
		return errors.New("rate limit and burst must be positive")
	}

	switch c.Cache.Type {
	case "none", "memory", "redis", "sqlite":
	default:
		return fmt.Errorf("cache type must be one of none, memory, redis, sqlite (got %q)", c.Cache.Type)
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.Type == "sqlite" && c.Cache.SQLite.Path == "" {
		return errors.New("sqlite path cannot be empty when using sqlite cache")
	}

	if c.Fetch.Timeout <= 0 {
		return errors.New("fetch timeout must be positive")
	}

	if c.Fetch.MaxRetries < 1 || c.Fetch.MaxRetries > 10 {
		return errors.New("fetch max retries must be between 1 and 10")
	}

	if c.Fetch.RetryDelay < 0 || c.Pipeline.ItemDelay < 0 {
		return errors.New("delays cannot be negative")
	}

	if c.Pipeline.ImageCap < 1 {
		return errors.New("image cap must be at least 1")
	}

	if len(c.Pipeline.AggregatorHosts) == 0 {
		return errors.New("at least one aggregator host is required")
	}

	for name, raw := range map[string]string{"feed base url": c.Pipeline.FeedBaseURL, "search base url": c.Pipeline.SearchBaseURL} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s must be an absolute http(s) URL", name)
		}
	}

	return nil
}
