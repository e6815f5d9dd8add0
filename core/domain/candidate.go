// ABOUTME: CandidateItem domain model represents a feed or search-result entry
// ABOUTME: Candidates are produced by the reader and never modified downstream

package domain

import (
	"strings"
	"time"
	"unicode"
)

// LinkHint tells the resolver which syntactic form an aggregator link has
type LinkHint string

const (
	// HintNone means the form of the link is unknown
	HintNone LinkHint = ""
	// HintSearchResult marks links taken from a rendered search page
	HintSearchResult LinkHint = "search"
	// HintRSS marks links taken from a syndication feed
	HintRSS LinkHint = "rss"
)

// CandidateItem is an entry prior to resolution and extraction
type CandidateItem struct {
	// Title is the headline as listed by the aggregator
	Title string `json:"title"`

	// FeedLink is the aggregator URL that indirects to the publisher
	FeedLink string `json:"feedLink"`

	// PublishedAt is the listing date, when the source provides one
	PublishedAt *time.Time `json:"publishedAt,omitempty"`

	// SourceName is the publisher name shown by the aggregator
	SourceName string `json:"sourceName,omitempty"`

	// SourceURL is the publisher home page, when listed
	SourceURL string `json:"sourceUrl,omitempty"`

	// Description is the plain-text snippet
	Description string `json:"description,omitempty"`

	// Hint records where the candidate came from
	Hint LinkHint `json:"-"`
}

// NormalizeTitle folds a headline for duplicate detection and matching:
// lowercase, punctuation dropped, whitespace collapsed.
func NormalizeTitle(title string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r):
			space = true
		}
	}
	return b.String()
}
