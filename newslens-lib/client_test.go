package newslens

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"newslens-api/core/domain"
	coreerrors "newslens-api/core/errors"
	"newslens-api/core/interfaces"
	"newslens-api/core/resolver"
	"newslens-api/infrastructure/cache/memory"
	"newslens-api/pkg/config"
	"newslens-api/pkg/featureflags"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func articlePage(title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<html><head><title>%s</title>
<meta property="article:published_time" content="2024-03-01T09:30:00Z"></head><body>
<article><h1>%s</h1>`, title, title)
	for i := 1; i <= 4; i++ {
		fmt.Fprintf(&b, "<p>Paragraph %d of the report carries enough words to count as real body text.</p>", i)
	}
	b.WriteString(`</article></body></html>`)
	return b.String()
}

// newsSite is an aggregator that redirects its feed links to a separate
// publisher server. The aggregator is addressed as localhost and the
// publisher by IP so the two count as different hosts.
type newsSite struct {
	aggregator   string
	publisher    string
	articleHits  int32
	redirectHits int32
}

var siteStories = []struct{ slug, title string }{
	{"harbour", "Harbour reopens"},
	{"bridge", "Bridge closes"},
	{"ferry", "Ferry fares rise"},
	{"tunnel", "Tunnel works delayed"},
}

func newNewsSite(t *testing.T) *newsSite {
	t.Helper()
	site := &newsSite{}

	pub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/articles/") {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(&site.articleHits, 1)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, articlePage("Story about "+strings.TrimPrefix(r.URL.Path, "/articles/")))
	}))
	t.Cleanup(pub.Close)
	site.publisher = pub.URL

	agg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/rss/search":
			w.Header().Set("Content-Type", "application/rss+xml")
			var items strings.Builder
			for _, s := range siteStories {
				fmt.Fprintf(&items, `<item><title>%s - Coast Times</title><link>%s/rss/articles/%s</link><source url="https://coast.example">Coast Times</source></item>`,
					s.title, site.aggregator, s.slug)
			}
			fmt.Fprintf(w, `<?xml version="1.0"?><rss version="2.0"><channel><title>results</title>%s</channel></rss>`, items.String())
		case strings.HasPrefix(r.URL.Path, "/rss/articles/"):
			atomic.AddInt32(&site.redirectHits, 1)
			http.Redirect(w, r, site.publisher+"/articles/"+strings.TrimPrefix(r.URL.Path, "/rss/articles/"), http.StatusFound)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(agg.Close)
	u, err := url.Parse(agg.URL)
	require.NoError(t, err)
	site.aggregator = "http://localhost:" + u.Port()

	return site
}

func (s *newsSite) link(slug string) string {
	return s.aggregator + "/rss/articles/" + slug
}

func testFlags() featureflags.Manager {
	return featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{
		featureflags.CacheEnabled: true,
	})
}

func newTestClient(t *testing.T, site *newsSite, opts ...Option) *Client {
	t.Helper()
	base := []Option{
		WithQuietMode(),
		WithFlags(testFlags()),
		WithEndpoints(site.aggregator, site.aggregator),
		WithAggregatorHosts("localhost"),
		WithItemDelay(0),
		WithFetchConfig(config.FetchConfig{
			Timeout:      5 * time.Second,
			MaxRetries:   1,
			MaxRedirects: 5,
			MaxBodyBytes: 1 << 20,
		}),
	}
	c, err := NewClient(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClient_SearchEndToEnd(t *testing.T) {
	site := newNewsSite(t)
	c := newTestClient(t, site)

	resp, err := c.Search(context.Background(), domain.SearchRequest{
		Query:          "harbour",
		IncludeContent: true,
		Limit:          3,
	})

	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Len(t, resp.Data.Items, 3)

	for i, item := range resp.Data.Items {
		story := siteStories[i]
		assert.True(t, item.Success, item.Error)
		assert.Equal(t, story.title, item.Candidate.Title)
		assert.Equal(t, "Coast Times", item.Candidate.SourceName)
		require.NotNil(t, item.Resolution)
		assert.True(t, item.Resolution.Resolved)
		assert.Equal(t, resolver.StrategyLocation, item.Resolution.Strategy)
		assert.Equal(t, site.link(story.slug), item.Resolution.OriginalAggregatorURL)
		assert.Equal(t, site.publisher+"/articles/"+story.slug, item.Resolution.CanonicalURL)
		require.NotNil(t, item.Content)
		assert.Equal(t, "Story about "+story.slug, item.Content.Title)
		assert.Contains(t, item.Content.BodyText, "Paragraph 4")
		assert.Equal(t, "2024-03-01T09:30:00.000Z", item.Content.PublishedAt)
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&site.redirectHits))
	assert.Equal(t, int32(3), atomic.LoadInt32(&site.articleHits))
}

func TestClient_ArticleUsesCache(t *testing.T) {
	site := newNewsSite(t)
	cache := memory.NewMemoryCache()
	c := newTestClient(t, site, WithCache(cache))

	req := domain.ArticleRequest{URL: site.link("bridge"), IncludeContent: true}
	for i := 0; i < 2; i++ {
		resp, err := c.Article(context.Background(), req)
		require.NoError(t, err)
		require.True(t, resp.Success, resp.Error)
		assert.Equal(t, site.publisher+"/articles/bridge", resp.Data.Resolution.CanonicalURL)
		assert.Equal(t, "Story about bridge", resp.Data.Content.Title)
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&site.redirectHits))
	assert.Equal(t, int32(1), atomic.LoadInt32(&site.articleHits))
	assert.Positive(t, cache.Len())
}

func TestClient_ResolveAndExtract(t *testing.T) {
	site := newNewsSite(t)
	c := newTestClient(t, site, WithoutCache())

	resolved := c.Resolve(context.Background(), site.link("harbour"))
	assert.True(t, resolved.Resolved)
	assert.Equal(t, resolver.StrategyLocation, resolved.Strategy)
	assert.Equal(t, site.publisher+"/articles/harbour", resolved.CanonicalURL)

	direct := c.Resolve(context.Background(), resolved.CanonicalURL)
	assert.Equal(t, resolver.StrategyPassthrough, direct.Strategy)
	assert.Equal(t, int32(1), atomic.LoadInt32(&site.redirectHits))

	content, err := c.Extract(context.Background(), resolved.CanonicalURL)
	require.NoError(t, err)
	assert.Equal(t, "Story about harbour", content.Title)

	_, err = c.Extract(context.Background(), site.publisher+"/missing")
	require.Error(t, err)
	assert.True(t, coreerrors.IsNotFound(err))
}

func TestClient_Candidates(t *testing.T) {
	site := newNewsSite(t)
	c := newTestClient(t, site)

	items, err := c.Candidates(context.Background(), candidateQuery("bridge", 5))

	require.NoError(t, err)
	assert.Len(t, items, len(siteStories))
	assert.Equal(t, site.link("harbour"), items[0].FeedLink)
	assert.Zero(t, atomic.LoadInt32(&site.redirectHits))
	assert.Zero(t, atomic.LoadInt32(&site.articleHits))
}

func TestNewClient_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"unknown cache", WithCacheOption(CacheOption{Type: "memcached"})},
		{"redis without address", WithCacheOption(CacheOption{Type: CacheTypeRedis})},
		{"zero ttl", WithCacheTTL(0)},
		{"negative delay", WithItemDelay(-time.Second)},
		{"no hosts", WithAggregatorHosts()},
		{"zero image cap", WithImageCap(0)},
		{"nil settings", WithSettings(nil)},
		{"bad fetch config", WithFetchConfig(config.FetchConfig{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(WithQuietMode(), tt.opt)
			require.Error(t, err)
			assert.True(t, IsConfigurationError(err))
		})
	}
}

func TestNewClient_WithSettingsOpensSQLite(t *testing.T) {
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "cache.db"))
	t.Setenv("CACHE_TYPE", "sqlite")
	cfg, err := config.LoadFromEnv()
	require.NoError(t, err)

	c, err := NewClient(WithQuietMode(), WithFlags(testFlags()), WithSettings(cfg))
	require.NoError(t, err)

	assert.Len(t, c.closers, 1)
	assert.Equal(t, cfg.Cache.TTL, c.config.CacheTTL)
	require.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func TestNewClient_UnreachableRedisFallsBack(t *testing.T) {
	c, err := NewClient(WithQuietMode(), WithCacheOption(CacheOption{
		Type:  CacheTypeRedis,
		Redis: config.RedisConfig{Address: "127.0.0.1:1"},
	}))

	require.NoError(t, err)
	assert.IsType(t, &memory.MemoryCache{}, c.config.Cache)
	assert.Empty(t, c.closers)
}

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient(WithQuietMode())
	require.NoError(t, err)

	assert.NotNil(t, c.config.Cache)
	assert.NotNil(t, c.config.Fetcher)
	assert.NotNil(t, c.Flags())
	assert.NotNil(t, c.Logger())
	assert.Equal(t, config.DefaultAggregatorHosts, c.config.Pipeline.AggregatorHosts)

	c, err = NewClient(WithQuietMode(), WithCacheOption(CacheOption{Type: CacheTypeNone}))
	require.NoError(t, err)
	assert.Nil(t, c.config.Cache)
}

func TestErrorHelpers(t *testing.T) {
	err := NewError(ErrorTypeConfiguration, "open sqlite cache").
		WithCause(fmt.Errorf("disk full")).
		WithContext("path", "/tmp/x.db")

	assert.Equal(t, "configuration: open sqlite cache (caused by: disk full)", err.Error())
	assert.Equal(t, "/tmp/x.db", err.Context["path"])
	assert.True(t, IsConfigurationError(fmt.Errorf("wrap: %w", err)))
	assert.False(t, IsConfigurationError(NewError(ErrorTypeInternal, "x")))

	assert.True(t, IsValidationError(&coreerrors.ValidationError{Field: "url"}))
	assert.True(t, IsBlockedError(&coreerrors.FetchError{Kind: coreerrors.KindBlocked}))
	assert.True(t, IsTimeoutError(&coreerrors.FetchError{Kind: coreerrors.KindTimeout}))
	assert.True(t, IsInsufficientContent(&coreerrors.ExtractionInsufficientError{URL: "u"}))
}

func candidateQuery(q string, limit int) interfaces.CandidateQuery {
	return interfaces.CandidateQuery{Query: q, Lang: "en", Country: "US", Limit: limit}
}
