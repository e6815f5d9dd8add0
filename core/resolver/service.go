// ABOUTME: Redirect resolver turns aggregator links into publisher URLs
// ABOUTME: Runs an ordered cascade of offline and network strategies, first match wins

package resolver

import (
	"bytes"
	"context"
	"net/url"

	"newslens-api/core/cascade"
	"newslens-api/core/domain"
	"newslens-api/core/interfaces"
	"newslens-api/pkg/featureflags"

	"github.com/PuerkitoBio/goquery"
)

// Strategy names reported in ResolvedArticle.Strategy
const (
	StrategyPassthrough  = "passthrough"
	StrategyQueryString  = "query_string"
	StrategyArticleToken = "article_token"
	StrategyLocation     = "location"
	StrategyMetaRefresh  = "meta_refresh"
	StrategyCanonical    = "canonical"
	StrategyScriptScan   = "script_scan"
	StrategySearchPage   = "search_page"
)

// searchFallbackLimit bounds how many search results are compared by title
const searchFallbackLimit = 20

// Config holds resolver settings
type Config struct {
	// AggregatorHosts lists hosts whose links need resolving
	AggregatorHosts []string

	// MaxRedirects bounds aggregator-internal redirect hops
	MaxRedirects int

	// Fetch carries timeout and retry settings for aggregator requests
	Fetch interfaces.FetchOptions

	// Flags gates the search page fallback on every resolution; nil
	// means the flag defaults
	Flags featureflags.Manager
}

// Service implements interfaces.Resolver
type Service struct {
	deps   interfaces.Dependencies
	logger interfaces.Logger
	hosts  *Hosts
	cfg    Config
	search interfaces.SearchPageReader
}

// NewService creates a resolver
func NewService(deps interfaces.Dependencies, cfg Config) *Service {
	if cfg.MaxRedirects <= 0 {
		cfg.MaxRedirects = 10
	}
	return &Service{
		deps:   deps,
		logger: interfaces.LoggerOrNop(deps.Logger),
		hosts:  NewHosts(cfg.AggregatorHosts),
		cfg:    cfg,
	}
}

// SetSearchPageReader provides the search page fallback. It only runs
// while the search_fallback flag is enabled.
func (s *Service) SetSearchPageReader(r interfaces.SearchPageReader) {
	s.search = r
}

// IsAggregator reports whether rawURL needs resolving
func (s *Service) IsAggregator(rawURL string) bool {
	return s.hosts.IsAggregator(rawURL)
}

// Resolve de-indirects req.Link. Links that are not aggregator-hosted are
// returned unchanged without touching the network.
func (s *Service) Resolve(ctx context.Context, req interfaces.ResolveRequest) domain.ResolvedArticle {
	if !s.hosts.IsAggregator(req.Link) {
		return domain.ResolvedArticle{
			CanonicalURL: req.Link,
			Resolved:     true,
			Strategy:     StrategyPassthrough,
		}
	}

	result := domain.ResolvedArticle{
		CanonicalURL:          req.Link,
		OriginalAggregatorURL: req.Link,
	}

	link, err := url.Parse(req.Link)
	if err != nil {
		return result
	}

	steps := []cascade.Step[string]{
		{Name: StrategyQueryString, Run: func(context.Context) (string, bool) {
			return fromQueryString(link, s.hosts)
		}},
		{Name: StrategyArticleToken, Run: func(context.Context) (string, bool) {
			return fromArticleToken(link, s.hosts)
		}},
	}
	steps = append(steps, s.pageSteps(req.Link)...)
	steps = append(steps, cascade.Step[string]{
		Name: StrategySearchPage,
		Run: func(ctx context.Context) (string, bool) {
			return s.fromSearchPage(ctx, req)
		},
	})

	target, strategy, ok := cascade.First(ctx, steps...)
	if !ok {
		s.logger.Debug("Aggregator link left unresolved", map[string]interface{}{
			"url":  req.Link,
			"hint": string(req.Hint),
		})
		return result
	}

	s.logger.Debug("Resolved aggregator link", map[string]interface{}{
		"url":       req.Link,
		"canonical": target,
		"strategy":  strategy,
	})

	result.CanonicalURL = target
	result.Resolved = true
	result.Strategy = strategy
	return result
}

// pageSteps are the strategies that inspect the aggregator response.
// They share a single, lazily performed fetch of link.
func (s *Service) pageSteps(link string) []cascade.Step[string] {
	var (
		loaded bool
		p      *page
	)
	load := func(ctx context.Context) *page {
		if !loaded {
			p = s.loadPage(ctx, link)
			loaded = true
		}
		return p
	}

	return []cascade.Step[string]{
		{Name: StrategyLocation, Run: func(ctx context.Context) (string, bool) {
			p := load(ctx)
			return p.location, p.location != ""
		}},
		{Name: StrategyMetaRefresh, Run: func(ctx context.Context) (string, bool) {
			return fromMetaRefresh(load(ctx), s.hosts)
		}},
		{Name: StrategyCanonical, Run: func(ctx context.Context) (string, bool) {
			return fromCanonical(load(ctx), s.hosts)
		}},
		{Name: StrategyScriptScan, Run: func(ctx context.Context) (string, bool) {
			return fromScripts(load(ctx), s.hosts)
		}},
	}
}

// loadPage fetches link with redirects disabled, following hops that stay
// on the aggregator. A hop to a publisher URL ends the chain. Fetch
// failures leave the page empty so every page strategy yields nothing.
func (s *Service) loadPage(ctx context.Context, link string) *page {
	p := &page{}
	if s.deps.Fetcher == nil {
		return p
	}

	opts := s.cfg.Fetch
	opts.NoRedirects = true

	current := link
	for hop := 0; hop <= s.cfg.MaxRedirects; hop++ {
		res, err := s.deps.Fetcher.Fetch(ctx, current, opts)
		if err != nil {
			s.logger.Debug("Resolver fetch failed", map[string]interface{}{
				"url":   current,
				"error": err.Error(),
			})
			return p
		}

		p.base, _ = url.Parse(res.URL)

		if res.IsRedirect() {
			next := resolveRef(p.base, res.Header.Get("Location"))
			switch {
			case next == "":
				return p
			case s.hosts.isPublisherURL(next):
				p.location = next
				return p
			case !s.hosts.IsAggregator(next):
				return p
			}
			current = next
			continue
		}

		if res.IsHTML() {
			doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
			if err == nil {
				p.doc = doc
			}
		}
		return p
	}

	return p
}

// fromSearchPage looks the item up again on the aggregator's search page
// by title and resolves the matching anchor. Links that came from the
// search page in the first place are not looked up again.
func (s *Service) fromSearchPage(ctx context.Context, req interfaces.ResolveRequest) (string, bool) {
	if s.search == nil || req.Title == "" || req.Hint == domain.HintSearchResult {
		return "", false
	}
	if !featureflags.Enabled(ctx, s.cfg.Flags, featureflags.SearchFallback) {
		return "", false
	}

	items, err := s.search.SearchPage(ctx, interfaces.CandidateQuery{
		Query:   req.Title,
		Lang:    req.Lang,
		Country: req.Country,
		Limit:   searchFallbackLimit,
	})
	if err != nil {
		s.logger.Debug("Search page fallback failed", map[string]interface{}{
			"title": req.Title,
			"error": err.Error(),
		})
		return "", false
	}

	want := domain.NormalizeTitle(req.Title)
	for _, item := range items {
		if item.FeedLink == req.Link || domain.NormalizeTitle(item.Title) != want {
			continue
		}
		if s.hosts.isPublisherURL(item.FeedLink) {
			return item.FeedLink, true
		}
		if !s.hosts.IsAggregator(item.FeedLink) {
			continue
		}
		if target, _, ok := cascade.First(ctx, s.pageSteps(item.FeedLink)...); ok {
			return target, true
		}
	}

	return "", false
}
