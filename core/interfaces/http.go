package interfaces

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Fetcher performs HTTP GETs with timeout, bounded retries, user-agent
// rotation and blocking detection. It is the only component that talks to
// the network; every other service goes through it.
//
// On failure the returned error is a *errors.FetchError carrying the
// attempt count and the last underlying error.
type Fetcher interface {
	Fetch(ctx context.Context, url string, opts FetchOptions) (*FetchResult, error)
}

// FetchOptions tunes a single fetch. Zero values fall back to the
// fetcher's configured defaults.
type FetchOptions struct {
	// Timeout bounds each attempt
	Timeout time.Duration

	// MaxRetries is the total number of attempts allowed
	MaxRetries int

	// RetryDelay is the backoff base; attempt n waits (n-1)*RetryDelay
	RetryDelay time.Duration

	// NoRedirects returns 3xx responses as-is instead of following them
	NoRedirects bool

	// MaxRedirects limits redirect hops when redirects are followed
	MaxRedirects int

	// Minimal sends a reduced header set, used as an alternate strategy
	// against sites that fingerprint browser-like requests
	Minimal bool

	// Accept overrides the Accept header
	Accept string

	// SkipBlockDetection disables the body-text block heuristic, for
	// machine-readable documents such as feeds
	SkipBlockDetection bool
}

// FetchResult is the success outcome of a fetch
type FetchResult struct {
	// URL is the requested URL
	URL string

	// FinalURL is the URL after any followed redirects
	FinalURL string

	// StatusCode of the last response
	StatusCode int

	// Header of the last response
	Header http.Header

	// Body decoded to UTF-8
	Body []byte

	// Truncated is set when Body was cut at the configured size cap
	Truncated bool

	// Attempts made, including the successful one
	Attempts int
}

// IsRedirect reports whether the response is a 3xx with a Location
func (r *FetchResult) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400 && r.Header.Get("Location") != ""
}

// IsHTML reports whether the response declares an HTML body
func (r *FetchResult) IsHTML() bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return len(r.Body) > 0
	}
	return strings.Contains(strings.ToLower(ct), "html")
}
