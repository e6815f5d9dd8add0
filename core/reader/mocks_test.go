package reader

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	coreerrors "newslens-api/core/errors"
	"newslens-api/core/interfaces"
)

// mockFetcher serves canned bodies keyed by URL path
type mockFetcher struct {
	mu     sync.Mutex
	bodies map[string]string
	errs   map[string]error
	calls  []string
	opts   []interfaces.FetchOptions
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		bodies: make(map[string]string),
		errs:   make(map[string]error),
	}
}

func (m *mockFetcher) Fetch(ctx context.Context, rawURL string, opts interfaces.FetchOptions) (*interfaces.FetchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, rawURL)
	m.opts = append(m.opts, opts)

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &coreerrors.FetchError{Kind: coreerrors.KindInvalidURL, URL: rawURL, Attempts: 1, Err: err}
	}
	if err := m.errs[u.Path]; err != nil {
		return nil, err
	}
	body, ok := m.bodies[u.Path]
	if !ok {
		return nil, &coreerrors.FetchError{Kind: coreerrors.KindHTTP, URL: rawURL, StatusCode: http.StatusNotFound, Attempts: 1}
	}
	return &interfaces.FetchResult{
		URL:        rawURL,
		FinalURL:   rawURL,
		StatusCode: http.StatusOK,
		Header:     http.Header{},
		Body:       []byte(body),
		Attempts:   1,
	}, nil
}

func (m *mockFetcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
