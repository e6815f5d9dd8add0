package extractor

import (
	"context"
	"net/http"

	"newslens-api/core/interfaces"
)

// mockFetcher returns one canned page, or err, and records options
type mockFetcher struct {
	body        string
	contentType string
	finalURL    string
	err         error
	lastOpts    interfaces.FetchOptions
	calls       int
}

func (m *mockFetcher) Fetch(ctx context.Context, url string, opts interfaces.FetchOptions) (*interfaces.FetchResult, error) {
	m.calls++
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}

	ct := m.contentType
	if ct == "" {
		ct = "text/html; charset=utf-8"
	}
	final := m.finalURL
	if final == "" {
		final = url
	}
	return &interfaces.FetchResult{
		URL:        url,
		FinalURL:   final,
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{ct}},
		Body:       []byte(m.body),
		Attempts:   1,
	}, nil
}
