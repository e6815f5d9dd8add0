// ABOUTME: Request models consumed by the orchestrator
// ABOUTME: Holds defaults and validation for search and single-article requests

package domain

import (
	"net/url"
	"regexp"
	"strings"

	"newslens-api/core/errors"
)

// Request types
const (
	TypeArticle = "article"
	TypeRSS     = "rss"
)

// Request limits
const (
	DefaultLimit   = 10
	MaxLimit       = 50
	maxQueryLength = 200
)

var (
	langPattern    = regexp.MustCompile(`^[a-zA-Z]{2,3}$`)
	countryPattern = regexp.MustCompile(`^[a-zA-Z]{2}$`)
)

// SearchRequest asks for articles matching a query
type SearchRequest struct {
	Query          string
	Lang           string
	Country        string
	Type           string
	IncludeContent bool
	Limit          int
}

// WithDefaults fills in unset optional fields
func (r SearchRequest) WithDefaults() SearchRequest {
	r.Query = strings.TrimSpace(r.Query)
	if r.Lang == "" {
		r.Lang = "en"
	}
	if r.Country == "" {
		r.Country = "US"
	}
	if r.Type == "" {
		r.Type = TypeArticle
	}
	if r.Limit == 0 {
		r.Limit = DefaultLimit
	}
	r.Lang = strings.ToLower(r.Lang)
	r.Country = strings.ToUpper(r.Country)
	return r
}

// Validate checks the request after defaults have been applied
func (r SearchRequest) Validate() error {
	if r.Query == "" {
		return &errors.ValidationError{Field: "query", Message: "query is required"}
	}
	if len(r.Query) > maxQueryLength {
		return &errors.ValidationError{Field: "query", Message: "query is too long"}
	}
	if r.Type != TypeArticle && r.Type != TypeRSS {
		return &errors.ValidationError{Field: "type", Message: "type must be 'article' or 'rss'"}
	}
	if r.Limit < 1 || r.Limit > MaxLimit {
		return &errors.ValidationError{Field: "limit", Message: "limit must be between 1 and 50"}
	}
	if !langPattern.MatchString(r.Lang) {
		return &errors.ValidationError{Field: "lang", Message: "lang must be a 2-3 letter language code"}
	}
	if !countryPattern.MatchString(r.Country) {
		return &errors.ValidationError{Field: "country", Message: "country must be a 2 letter country code"}
	}
	return nil
}

// ArticleRequest asks for one article by URL
type ArticleRequest struct {
	URL            string
	IncludeContent bool
}

// Validate checks that URL parses as an absolute http(s) URL
func (r ArticleRequest) Validate() error {
	return ValidateURL("url", r.URL)
}

// ValidateURL checks that raw is an absolute http or https URL
func ValidateURL(field, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return &errors.ValidationError{Field: field, Message: "url is required"}
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return &errors.ValidationError{Field: field, Message: "url is not valid"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &errors.ValidationError{Field: field, Message: "scheme must be http or https"}
	}
	if u.Host == "" {
		return &errors.ValidationError{Field: field, Message: "url must have a host"}
	}
	return nil
}
