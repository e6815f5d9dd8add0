// ABOUTME: Resolution and extraction results for a single article
// ABOUTME: ResolvedArticle is written once by the resolver; ExtractedContent by the extractor

package domain

import (
	"net/url"
	"strings"
)

// ResolvedArticle is the outcome of de-indirecting an aggregator link
type ResolvedArticle struct {
	// CanonicalURL is the publisher URL, or the input link when unresolved
	CanonicalURL string `json:"canonicalUrl"`

	// OriginalAggregatorURL is the aggregator link the resolution started from
	OriginalAggregatorURL string `json:"originalAggregatorUrl,omitempty"`

	// Resolved is true when CanonicalURL points away from the aggregator
	Resolved bool `json:"resolved"`

	// Strategy names the cascade step that produced CanonicalURL
	Strategy string `json:"strategy,omitempty"`
}

// ExtractedContent is the structured data derived from an article page
type ExtractedContent struct {
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle,omitempty"`
	BodyText    string   `json:"bodyText,omitempty"`
	Images      []string `json:"images"`
	PublishedAt string   `json:"publishedAt,omitempty"`
	Location    string   `json:"location,omitempty"`
	Category    string   `json:"category,omitempty"`
	Author      string   `json:"author,omitempty"`
	Description string   `json:"description,omitempty"`
	SourceHost  string   `json:"sourceHost"`
	WordCount   int      `json:"wordCount"`
}

// HostOf returns the lowercase host of rawURL without a leading "www."
func HostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
