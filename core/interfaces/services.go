// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts between the reader, resolver, extractor and orchestrator

package interfaces

import (
	"context"

	"newslens-api/core/domain"
)

// CandidateQuery describes what the reader should list
type CandidateQuery struct {
	Query   string
	Lang    string
	Country string
	Limit   int
}

// CandidateReader turns a query into ordered, deduplicated candidates
type CandidateReader interface {
	Candidates(ctx context.Context, q CandidateQuery) ([]domain.CandidateItem, error)
}

// SearchPageReader lists candidates from a rendered search page only.
// The resolver uses it to locate an item again when every other
// strategy has failed.
type SearchPageReader interface {
	SearchPage(ctx context.Context, q CandidateQuery) ([]domain.CandidateItem, error)
}

// ResolveRequest is the input of a resolution
type ResolveRequest struct {
	Link  string
	Hint  domain.LinkHint
	Title string

	// Lang and Country locate the item on the search page fallback
	Lang    string
	Country string
}

// Resolver de-indirects aggregator links. It never fails: an unresolved
// link is reported through ResolvedArticle.Resolved.
type Resolver interface {
	Resolve(ctx context.Context, req ResolveRequest) domain.ResolvedArticle
	IsAggregator(rawURL string) bool
}

// ExtractOptions tunes a single extraction
type ExtractOptions struct {
	// Minimal fetches with the reduced header set
	Minimal bool
}

// Extractor derives structured content from an article page
type Extractor interface {
	Extract(ctx context.Context, url string, opts ExtractOptions) (*domain.ExtractedContent, error)
}
