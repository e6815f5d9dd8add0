package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, 6*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 15*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 3, cfg.Fetch.MaxRetries)
	assert.Equal(t, time.Second, cfg.Fetch.RetryDelay)
	assert.Equal(t, 8, cfg.Pipeline.ImageCap)
	assert.Equal(t, DefaultAggregatorHosts, cfg.Pipeline.AggregatorHosts)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("CACHE_TYPE", "Redis")
	t.Setenv("FETCH_TIMEOUT", "2s")
	t.Setenv("FETCH_MAX_RETRIES", "5")
	t.Setenv("ITEM_DELAY", "0s")
	t.Setenv("AGGREGATOR_HOSTS", " news.google.com , Bing.com ,,")
	t.Setenv("FEED_BASE_URL", "http://localhost:9999/")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Cache.Type)
	assert.Equal(t, 2*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 5, cfg.Fetch.MaxRetries)
	assert.Equal(t, time.Duration(0), cfg.Pipeline.ItemDelay)
	assert.Equal(t, []string{"news.google.com", "bing.com"}, cfg.Pipeline.AggregatorHosts)
	assert.Equal(t, "http://localhost:9999", cfg.Pipeline.FeedBaseURL)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "newslens.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9001\"\ncache_type: sqlite\nsqlite_path: /tmp/newslens.db\nitem_delay: 2s\n"), 0o600))
	t.Setenv("ITEM_DELAY", "750ms")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9001", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Cache.Type)
	assert.Equal(t, "/tmp/newslens.db", cfg.Cache.SQLite.Path)
	assert.Equal(t, 750*time.Millisecond, cfg.Pipeline.ItemDelay, "environment wins over the file")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"empty port", func(c *Config) { c.Server.Port = "" }, true},
		{"unknown cache type", func(c *Config) { c.Cache.Type = "memcached" }, true},
		{"cache disabled", func(c *Config) { c.Cache.Type = "none" }, false},
		{"redis without address", func(c *Config) { c.Cache.Type = "redis"; c.Cache.Redis.Address = "" }, true},
		{"sqlite without path", func(c *Config) { c.Cache.Type = "sqlite"; c.Cache.SQLite.Path = "" }, true},
		{"zero retries", func(c *Config) { c.Fetch.MaxRetries = 0 }, true},
		{"negative delay", func(c *Config) { c.Pipeline.ItemDelay = -time.Second }, true},
		{"zero image cap", func(c *Config) { c.Pipeline.ImageCap = 0 }, true},
		{"no aggregators", func(c *Config) { c.Pipeline.AggregatorHosts = nil }, true},
		{"relative feed url", func(c *Config) { c.Pipeline.FeedBaseURL = "/rss" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFromEnv()
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
