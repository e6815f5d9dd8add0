package orchestrator

import (
	"context"
	"encoding/json"
	"errors"

	"newslens-api/core/interfaces"
	"newslens-api/pkg/featureflags"
)

// Cache key prefixes
const (
	resolvePrefix = "resolve:"
	extractPrefix = "extract:"
)

func resolveKey(link string) string { return resolvePrefix + link }

func extractKey(url string) string { return extractPrefix + url }

func (s *Service) cacheEnabled(ctx context.Context) bool {
	return s.cache != nil && featureflags.Enabled(ctx, s.flags, featureflags.CacheEnabled)
}

// cacheGet decodes a cached value into dst. Misses and decode failures
// both report false.
func (s *Service) cacheGet(ctx context.Context, key string, dst interface{}) bool {
	if !s.cacheEnabled(ctx) {
		return false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, interfaces.ErrCacheMiss) {
			s.logger.Warn("Cache read failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		s.logger.Warn("Discarding undecodable cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		_ = s.cache.Delete(ctx, key)
		return false
	}
	return true
}

func (s *Service) cacheSet(ctx context.Context, key string, value interface{}) {
	if !s.cacheEnabled(ctx) {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("Cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
