// ABOUTME: Reader lists candidate items for a query from the aggregator
// ABOUTME: Reads the RSS search feed first and falls back to the search page

package reader

import (
	"context"
	"fmt"

	"newslens-api/core/domain"
	"newslens-api/core/interfaces"
	"newslens-api/pkg/featureflags"
)

// Config holds reader endpoints and fetch settings
type Config struct {
	FeedBaseURL   string
	SearchBaseURL string
	Fetch         interfaces.FetchOptions
}

// Service implements interfaces.CandidateReader and
// interfaces.SearchPageReader
type Service struct {
	deps   interfaces.Dependencies
	logger interfaces.Logger
	cfg    Config
	flags  featureflags.Manager
}

// NewService creates a reader. A nil flag manager uses flag defaults.
func NewService(deps interfaces.Dependencies, cfg Config, flags featureflags.Manager) *Service {
	return &Service{
		deps:   deps,
		logger: interfaces.LoggerOrNop(deps.Logger),
		cfg:    cfg,
		flags:  flags,
	}
}

// Candidates returns up to q.Limit unique candidates. The search page is
// read when the feed fails or comes up short. An error is returned only
// when no source produced anything.
func (s *Service) Candidates(ctx context.Context, q interfaces.CandidateQuery) ([]domain.CandidateItem, error) {
	if s.deps.Fetcher == nil {
		return nil, fmt.Errorf("read candidates: fetcher not configured")
	}
	if q.Limit <= 0 {
		q.Limit = domain.DefaultLimit
	}

	feedItems, feedErr := s.readFeed(ctx, q)
	if feedErr != nil {
		s.logger.Warn("Search feed failed", map[string]interface{}{
			"query": q.Query,
			"error": feedErr.Error(),
		})
	}

	items := merge(q.Limit, feedItems)
	if len(items) >= q.Limit || !featureflags.Enabled(ctx, s.flags, featureflags.SearchFallback) {
		return s.finish(q, items, feedErr)
	}
	if err := ctx.Err(); err != nil {
		return s.finish(q, items, err)
	}

	pageItems, pageErr := s.SearchPage(ctx, q)
	if pageErr != nil {
		s.logger.Warn("Search page failed", map[string]interface{}{
			"query": q.Query,
			"error": pageErr.Error(),
		})
		if feedErr == nil {
			feedErr = pageErr
		}
	}

	return s.finish(q, merge(q.Limit, feedItems, pageItems), feedErr)
}

func (s *Service) finish(q interfaces.CandidateQuery, items []domain.CandidateItem, err error) ([]domain.CandidateItem, error) {
	if len(items) == 0 && err != nil {
		return nil, fmt.Errorf("discover candidates for %q: %w", q.Query, err)
	}
	return items, nil
}

// merge concatenates the lists in order, dropping entries whose link or
// normalised title was already seen, and stops at limit
func merge(limit int, lists ...[]domain.CandidateItem) []domain.CandidateItem {
	out := make([]domain.CandidateItem, 0, limit)
	links := make(map[string]struct{})
	titles := make(map[string]struct{})

	for _, list := range lists {
		for _, c := range list {
			if len(out) >= limit {
				return out
			}
			key := domain.NormalizeTitle(c.Title)
			if _, dup := links[c.FeedLink]; dup {
				continue
			}
			if _, dup := titles[key]; dup && key != "" {
				continue
			}
			links[c.FeedLink] = struct{}{}
			titles[key] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}
