package resolver

import (
	"context"
	"net/http"
	"sync"

	"newslens-api/core/domain"
	coreerrors "newslens-api/core/errors"
	"newslens-api/core/interfaces"
)

// mockFetcher serves canned responses by URL and records every call
type mockFetcher struct {
	mu        sync.Mutex
	responses map[string]*interfaces.FetchResult
	calls     []string
	opts      []interfaces.FetchOptions
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{responses: make(map[string]*interfaces.FetchResult)}
}

func (m *mockFetcher) html(url, body string) {
	m.responses[url] = &interfaces.FetchResult{
		URL:        url,
		FinalURL:   url,
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"text/html; charset=utf-8"}},
		Body:       []byte(body),
	}
}

func (m *mockFetcher) redirect(url, location string) {
	m.responses[url] = &interfaces.FetchResult{
		URL:        url,
		FinalURL:   url,
		StatusCode: http.StatusFound,
		Header:     http.Header{"Location": []string{location}},
	}
}

func (m *mockFetcher) Fetch(ctx context.Context, url string, opts interfaces.FetchOptions) (*interfaces.FetchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, url)
	m.opts = append(m.opts, opts)

	if res, ok := m.responses[url]; ok {
		return res, nil
	}
	return nil, &coreerrors.FetchError{Kind: coreerrors.KindHTTP, URL: url, StatusCode: http.StatusNotFound, Attempts: 1}
}

func (m *mockFetcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockSearchPage returns fixed items and records the queries it saw
type mockSearchPage struct {
	items   []domain.CandidateItem
	err     error
	queries []interfaces.CandidateQuery
}

func (m *mockSearchPage) SearchPage(ctx context.Context, q interfaces.CandidateQuery) ([]domain.CandidateItem, error) {
	m.queries = append(m.queries, q)
	return m.items, m.err
}
