// ABOUTME: Main client for the newslens library wrapping the resolution and extraction pipeline
// ABOUTME: Lets Go programs search news and extract articles without running the HTTP API

package newslens

import (
	"context"

	"newslens-api/core/domain"
	"newslens-api/core/extractor"
	"newslens-api/core/interfaces"
	"newslens-api/core/orchestrator"
	"newslens-api/core/reader"
	"newslens-api/core/resolver"
	"newslens-api/pkg/featureflags"
)

// Client is the main entry point for the newslens library
type Client struct {
	reader    *reader.Service
	resolver  *resolver.Service
	extractor *extractor.Service
	pipeline  *orchestrator.Service

	deps    interfaces.Dependencies
	config  Config
	closers []func() error
}

// NewClient creates a client with the given options. Unset dependencies
// fall back to a memory cache, the standard fetcher and a stderr logger.
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()

	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	c := &Client{config: config}

	if config.Logger == nil {
		config.Logger = DefaultLogger()
	}
	if config.Cache == nil && !config.cacheDisabled {
		cache, closeFn, err := openCache(config.cacheOption, config.Logger)
		if err != nil {
			return nil, err
		}
		config.Cache = cache
		if closeFn != nil {
			c.closers = append(c.closers, closeFn)
		}
	}
	if config.Fetcher == nil {
		config.Fetcher = DefaultFetcher(config.Fetch, config.Logger)
	}
	if config.Flags == nil {
		config.Flags = featureflags.NewEnvManager("FEATURE_")
	}

	c.config = config
	c.deps = interfaces.Dependencies{
		Cache:   config.Cache,
		Fetcher: config.Fetcher,
		Logger:  config.Logger,
	}
	c.wire()

	return c, nil
}

// wire builds reader, resolver, extractor and orchestrator in dependency order
func (c *Client) wire() {
	cfg := c.config
	fetchOpts := interfaces.FetchOptions{
		Timeout:      cfg.Fetch.Timeout,
		MaxRetries:   cfg.Fetch.MaxRetries,
		RetryDelay:   cfg.Fetch.RetryDelay,
		MaxRedirects: cfg.Fetch.MaxRedirects,
	}

	c.reader = reader.NewService(c.deps, reader.Config{
		FeedBaseURL:   cfg.Pipeline.FeedBaseURL,
		SearchBaseURL: cfg.Pipeline.SearchBaseURL,
		Fetch:         fetchOpts,
	}, cfg.Flags)

	c.resolver = resolver.NewService(c.deps, resolver.Config{
		AggregatorHosts: cfg.Pipeline.AggregatorHosts,
		MaxRedirects:    cfg.Fetch.MaxRedirects,
		Fetch:           fetchOpts,
		Flags:           cfg.Flags,
	})
	c.resolver.SetSearchPageReader(c.reader)

	c.extractor = extractor.NewService(c.deps, extractor.Config{
		ImageCap: cfg.Pipeline.ImageCap,
		Fetch:    fetchOpts,
	}, cfg.Flags)

	c.pipeline = orchestrator.NewService(c.deps, c.reader, c.resolver, c.extractor, orchestrator.Config{
		ItemDelay: cfg.Pipeline.ItemDelay,
		CacheTTL:  cfg.CacheTTL,
	}, cfg.Flags)
}

// Search discovers, resolves and extracts articles for a query
func (c *Client) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	return c.pipeline.Search(ctx, req)
}

// Article resolves and extracts a single URL
func (c *Client) Article(ctx context.Context, req domain.ArticleRequest) (*domain.ArticleResponse, error) {
	return c.pipeline.Article(ctx, req)
}

// Candidates lists feed items for a query without resolving them
func (c *Client) Candidates(ctx context.Context, q interfaces.CandidateQuery) ([]domain.CandidateItem, error) {
	return c.reader.Candidates(ctx, q)
}

// Resolve de-indirects one link. It never fails; check Resolved.
func (c *Client) Resolve(ctx context.Context, link string) domain.ResolvedArticle {
	return c.resolver.Resolve(ctx, interfaces.ResolveRequest{Link: link, Hint: domain.HintNone})
}

// Extract pulls structured content from a publisher URL
func (c *Client) Extract(ctx context.Context, url string) (*domain.ExtractedContent, error) {
	return c.extractor.Extract(ctx, url, interfaces.ExtractOptions{})
}

// Flags returns the feature flag manager the client was built with
func (c *Client) Flags() featureflags.Manager {
	return c.config.Flags
}

// Logger returns the logger the client was built with
func (c *Client) Logger() interfaces.Logger {
	return c.config.Logger
}

// Close releases cache connections opened by the client. Caches passed
// in with WithCache are left to the caller.
func (c *Client) Close() error {
	var first error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}
