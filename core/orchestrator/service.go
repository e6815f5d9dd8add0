// ABOUTME: Orchestrator composes reader, resolver and extractor per request
// ABOUTME: Batch items run sequentially with a politeness delay and isolated failures

package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"newslens-api/core/domain"
	coreerrors "newslens-api/core/errors"
	"newslens-api/core/interfaces"
	"newslens-api/pkg/featureflags"
)

// DefaultItemDelay is the pause between batch items
const DefaultItemDelay = 500 * time.Millisecond

// Config holds orchestrator settings
type Config struct {
	// ItemDelay is the pause between consecutive items of a batch
	ItemDelay time.Duration

	// CacheTTL bounds cached resolutions and extractions
	CacheTTL time.Duration
}

// Service runs search and single-article requests
type Service struct {
	reader    interfaces.CandidateReader
	resolver  interfaces.Resolver
	extractor interfaces.Extractor
	cache     interfaces.Cache
	logger    interfaces.Logger
	cfg       Config
	flags     featureflags.Manager
}

// NewService creates an orchestrator. deps.Cache may be nil.
func NewService(
	deps interfaces.Dependencies,
	reader interfaces.CandidateReader,
	resolver interfaces.Resolver,
	extractor interfaces.Extractor,
	cfg Config,
	flags featureflags.Manager,
) *Service {
	if cfg.ItemDelay < 0 {
		cfg.ItemDelay = 0
	}
	return &Service{
		reader:    reader,
		resolver:  resolver,
		extractor: extractor,
		cache:     deps.Cache,
		logger:    interfaces.LoggerOrNop(deps.Logger),
		cfg:       cfg,
		flags:     flags,
	}
}

// Search discovers candidates for a query and processes each one. Only a
// validation or discovery failure is returned as an error; item failures
// are recorded on the items.
func (s *Service) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	req = req.WithDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	candidates, err := s.reader.Candidates(ctx, interfaces.CandidateQuery{
		Query:   req.Query,
		Lang:    req.Lang,
		Country: req.Country,
		Limit:   req.Limit,
	})
	if err != nil {
		return nil, coreerrors.WrapError(err, "search")
	}
	if len(candidates) > req.Limit {
		candidates = candidates[:req.Limit]
	}

	start := time.Now()
	items := make([]domain.ItemResult, 0, len(candidates))

	if req.Type == domain.TypeRSS {
		for _, c := range candidates {
			items = append(items, domain.ItemResult{Candidate: c, Success: true})
		}
	} else {
		items = s.processBatch(ctx, req, candidates)
	}

	succeeded := 0
	for _, item := range items {
		if item.Success {
			succeeded++
		}
	}
	s.logger.Info("Search completed", map[string]interface{}{
		"query":       req.Query,
		"type":        req.Type,
		"candidates":  len(candidates),
		"succeeded":   succeeded,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return &domain.SearchResponse{
		Success: true,
		Data: &domain.SearchData{
			Query: req.Query,
			Type:  req.Type,
			Count: len(items),
			Items: items,
		},
	}, nil
}

// processBatch handles candidates one at a time. A cancelled request
// marks the remaining items failed instead of dropping them.
func (s *Service) processBatch(ctx context.Context, req domain.SearchRequest, candidates []domain.CandidateItem) []domain.ItemResult {
	items := make([]domain.ItemResult, 0, len(candidates))

	for i, c := range candidates {
		if i > 0 {
			if err := s.pause(ctx); err != nil {
				for _, rest := range candidates[i:] {
					item := domain.ItemResult{Candidate: rest}
					item.Fail(err.Error())
					items = append(items, item)
				}
				break
			}
		}
		items = append(items, s.processItem(ctx, req, c))
	}

	return items
}

func (s *Service) processItem(ctx context.Context, req domain.SearchRequest, c domain.CandidateItem) domain.ItemResult {
	item := domain.ItemResult{Candidate: c}

	res := s.resolve(ctx, interfaces.ResolveRequest{
		Link:    c.FeedLink,
		Hint:    c.Hint,
		Title:   c.Title,
		Lang:    req.Lang,
		Country: req.Country,
	})
	item.Resolution = &res

	if !res.Resolved {
		item.Fail((&coreerrors.ResolutionFailureError{URL: c.FeedLink}).Error())
		return item
	}

	content, err := s.extract(ctx, res.CanonicalURL)
	if err != nil {
		s.logger.Warn("Item extraction failed", map[string]interface{}{
			"url":   res.CanonicalURL,
			"error": err.Error(),
		})
		item.Fail(err.Error())
		return item
	}

	item.Content = withBody(content, req.IncludeContent)
	item.Success = true
	return item
}

// Article resolves a single URL when it is aggregator-hosted, then
// extracts it. Resolution failure and insufficient content are reported
// in the response; other failures are returned as errors.
func (s *Service) Article(ctx context.Context, req domain.ArticleRequest) (*domain.ArticleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	link := strings.TrimSpace(req.URL)

	res := s.resolve(ctx, interfaces.ResolveRequest{Link: link})
	if !res.Resolved {
		return &domain.ArticleResponse{
			Success: false,
			Data:    &domain.ArticleData{Resolution: res},
			Error:   (&coreerrors.ResolutionFailureError{URL: link}).Error(),
		}, nil
	}

	content, err := s.extract(ctx, res.CanonicalURL)
	if err != nil {
		if coreerrors.IsExtractionInsufficient(err) {
			return &domain.ArticleResponse{
				Success: false,
				Data:    &domain.ArticleData{Resolution: res},
				Error:   err.Error(),
			}, nil
		}
		return nil, coreerrors.WrapError(err, "article")
	}

	return &domain.ArticleResponse{
		Success: true,
		Data: &domain.ArticleData{
			Resolution: res,
			Content:    withBody(content, req.IncludeContent),
		},
	}, nil
}

// resolve consults the cache for aggregator links. Publisher links pass
// through the resolver without a fetch and are never cached.
func (s *Service) resolve(ctx context.Context, req interfaces.ResolveRequest) domain.ResolvedArticle {
	if !s.resolver.IsAggregator(req.Link) {
		return s.resolver.Resolve(ctx, req)
	}

	key := resolveKey(req.Link)
	var cached domain.ResolvedArticle
	if s.cacheGet(ctx, key, &cached) {
		return cached
	}

	res := s.resolver.Resolve(ctx, req)
	if res.Resolved {
		s.cacheSet(ctx, key, res)
	}
	return res
}

// extract runs the extractor, retrying once with minimal headers when the
// first attempt was blocked or came back insufficient
func (s *Service) extract(ctx context.Context, rawURL string) (*domain.ExtractedContent, error) {
	key := extractKey(rawURL)
	var cached domain.ExtractedContent
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	content, err := s.extractor.Extract(ctx, rawURL, interfaces.ExtractOptions{})
	if err != nil && (coreerrors.IsExtractionInsufficient(err) || coreerrors.IsBlocked(err)) && ctx.Err() == nil {
		s.logger.Debug("Retrying extraction with minimal headers", map[string]interface{}{
			"url":   rawURL,
			"error": err.Error(),
		})
		content, err = s.extractor.Extract(ctx, rawURL, interfaces.ExtractOptions{Minimal: true})
	}
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, content)
	return content, nil
}

// pause waits ItemDelay or until ctx is done
func (s *Service) pause(ctx context.Context) error {
	if s.cfg.ItemDelay == 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.cfg.ItemDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("batch interrupted: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

// withBody returns content as-is, or a copy without body text
func withBody(content *domain.ExtractedContent, include bool) *domain.ExtractedContent {
	if include || content == nil {
		return content
	}
	trimmed := *content
	trimmed.BodyText = ""
	return &trimmed
}
