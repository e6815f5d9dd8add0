package orchestrator

import (
	"context"
	"strings"
	"sync"
	"time"

	"newslens-api/core/domain"
	"newslens-api/core/interfaces"
)

type mockReader struct {
	items []domain.CandidateItem
	err   error
	last  interfaces.CandidateQuery
}

func (m *mockReader) Candidates(ctx context.Context, q interfaces.CandidateQuery) ([]domain.CandidateItem, error) {
	m.last = q
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

// mockResolver treats links on agg.example as aggregator links and maps
// them through targets; missing targets stay unresolved
type mockResolver struct {
	targets map[string]string
	calls   []string
}

func (m *mockResolver) IsAggregator(rawURL string) bool {
	return strings.Contains(rawURL, "agg.example")
}

func (m *mockResolver) Resolve(ctx context.Context, req interfaces.ResolveRequest) domain.ResolvedArticle {
	m.calls = append(m.calls, req.Link)
	if !m.IsAggregator(req.Link) {
		return domain.ResolvedArticle{CanonicalURL: req.Link, Resolved: true, Strategy: "passthrough"}
	}
	if target, ok := m.targets[req.Link]; ok {
		return domain.ResolvedArticle{CanonicalURL: target, OriginalAggregatorURL: req.Link, Resolved: true, Strategy: "query_string"}
	}
	return domain.ResolvedArticle{CanonicalURL: req.Link, OriginalAggregatorURL: req.Link}
}

type extractCall struct {
	url     string
	minimal bool
}

// mockExtractor answers per URL; minimalErrs overrides the minimal retry
type mockExtractor struct {
	mu          sync.Mutex
	errs        map[string]error
	minimalErrs map[string]error
	calls       []extractCall
}

func (m *mockExtractor) Extract(ctx context.Context, url string, opts interfaces.ExtractOptions) (*domain.ExtractedContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, extractCall{url: url, minimal: opts.Minimal})

	if opts.Minimal {
		if err, ok := m.minimalErrs[url]; ok {
			if err != nil {
				return nil, err
			}
			return contentFor(url), nil
		}
	}
	if err := m.errs[url]; err != nil {
		return nil, err
	}
	return contentFor(url), nil
}

func contentFor(url string) *domain.ExtractedContent {
	return &domain.ExtractedContent{
		Title:      "Title of " + url,
		BodyText:   "Body of " + url,
		Images:     []string{},
		SourceHost: domain.HostOf(url),
		WordCount:  3,
	}
}

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}
	return v, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}
