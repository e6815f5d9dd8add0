// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package: caching, fetching and logging.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory cache backed by go-cache
// - cache/redis: Redis cache backed by go-redis
// - cache/sqlite: File cache backed by go-sqlite3
// - http/standard: Retrying fetcher with block detection and redirect limits
// - logger/structured: logrus logger with optional lumberjack file rotation
//
// # Cache Implementations
//
//	cache := memory.NewMemoryCacheWithCleanup(10 * time.Minute)
//	err := cache.Set(ctx, "resolve:"+link, data, 6*time.Hour)
//	value, err := cache.Get(ctx, "resolve:"+link)
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{Address: "localhost:6379"})
//
// # Fetcher
//
// Retries are applied to timeouts, network failures, blocks and 5xx answers:
//
//	fetcher := standard.NewStandardHTTPClient(standard.Config{MaxRetries: 3}, logger)
//	res, err := fetcher.Fetch(ctx, "https://example.com", interfaces.FetchOptions{})
//
// # Logger
//
//	logger := structured.New(structured.Options{Level: "info", Format: "json"})
//	logger.Info("Search completed", map[string]interface{}{"query": "rates"})
package infrastructure
