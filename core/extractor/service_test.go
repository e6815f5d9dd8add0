package extractor

import (
	"context"
	"fmt"
	"strings"
	"testing"

	coreerrors "newslens-api/core/errors"
	"newslens-api/core/interfaces"
	"newslens-api/pkg/featureflags"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const longParagraph = "The central bank held interest rates steady on Tuesday, citing cooling inflation and a resilient labour market across the region."

func newTestService(f *mockFetcher, imageCap int) *Service {
	return NewService(interfaces.Dependencies{Fetcher: f}, Config{ImageCap: imageCap}, featureflags.NewStaticManager(nil))
}

func articlePage() string {
	return `<!doctype html>
<html><head>
<title>Rates held steady as inflation cools | Daily Ledger</title>
<meta name="description" content="Policymakers signal patience on further moves.">
<meta name="author" content="By Jane Doe">
<meta property="og:image" content="https://cdn.ledger.example/images/rates-hero.jpg">
<script>window.tracker = "advertisement captcha";</script>
<script type="application/ld+json">{"@type":"NewsArticle","datePublished":"2023-05-05T08:00:00Z"}</script>
</head><body>
<header><a href="/">Daily Ledger</a><nav><a href="/world">World</a></nav></header>
<div class="breadcrumb"><a href="/">Home</a><a href="/business">Business</a><a href="#">Rates held steady</a></div>
<article>
  <header><h1 class="article-title">Rates held steady as inflation cools</h1>
  <h2 class="subtitle">Policymakers signal patience on further moves</h2>
  <time datetime="2024-01-01T10:00:00Z">Jan 1</time></header>
  <span class="dateline">LONDON (Ledger) -</span>
  <p>` + longParagraph + `</p>
  <div class="advertisement"><p>This paragraph is an advert and must never appear in the body text.</p></div>
  <p>Officials said the decision was unanimous and that future moves would depend on incoming data releases.</p>
  <p>Short line.</p>
  <p>Sign up for our newsletter to receive the latest stories every morning in your inbox.</p>
  <figure><img src="/images/rates-chart.png" alt="chart"></figure>
  <img src="https://cdn.ledger.example/images/rates-hero.jpg">
  <img src="https://cdn.ledger.example/static/site-logo.png">
  <img data-src="https://cdn.ledger.example/images/lazy-photo.jpg">
  <img src="data:image/gif;base64,R0lGODlhAQABAAAAACw=">
  <p>Markets reacted calmly, with government bond yields little changed by the close of trading in the afternoon.</p>
</article>
<aside><p>Related: other stories that should be stripped from the article body entirely.</p></aside>
<footer><p>Copyright notice and footer links that are not part of the article at all.</p></footer>
</body></html>`
}

func TestExtract_FullArticle(t *testing.T) {
	f := &mockFetcher{body: articlePage()}
	svc := newTestService(f, 8)

	got, err := svc.Extract(context.Background(), "https://www.ledger.example/2024/05/rates-held", interfaces.ExtractOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Rates held steady as inflation cools", got.Title)
	assert.Equal(t, "Policymakers signal patience on further moves", got.Subtitle)
	assert.Equal(t, "Policymakers signal patience on further moves.", got.Description)
	assert.Equal(t, "Jane Doe", got.Author)
	assert.Equal(t, "2024-01-01T10:00:00.000Z", got.PublishedAt)
	assert.Equal(t, "LONDON", got.Location)
	assert.Equal(t, "Business", got.Category)
	assert.Equal(t, "ledger.example", got.SourceHost)

	assert.True(t, strings.HasPrefix(got.BodyText, longParagraph))
	assert.Contains(t, got.BodyText, "\n\nOfficials said")
	assert.NotContains(t, got.BodyText, "advert")
	assert.NotContains(t, got.BodyText, "newsletter")
	assert.NotContains(t, got.BodyText, "Short line")
	assert.NotContains(t, got.BodyText, "Related")
	assert.NotContains(t, got.BodyText, "Copyright")
	assert.Equal(t, len(strings.Fields(got.BodyText)), got.WordCount)

	assert.Equal(t, []string{
		"https://cdn.ledger.example/images/rates-hero.jpg",
		"https://www.ledger.example/images/rates-chart.png",
		"https://cdn.ledger.example/images/lazy-photo.jpg",
	}, got.Images)
}

func TestExtract_TimeDatetimeNormalised(t *testing.T) {
	page := `<html><head><title>Storm makes landfall overnight</title></head><body>
<time datetime="2024-01-01T10:00:00Z">Monday</time><p>` + longParagraph + `</p></body></html>`

	got, err := newTestService(&mockFetcher{body: page}, 8).Extract(context.Background(), "https://example.com/a", interfaces.ExtractOptions{})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01T10:00:00.000Z", got.PublishedAt)
}

func TestExtract_ShortParagraphsAreInsufficient(t *testing.T) {
	page := `<html><head><title>Hi</title></head><body>
<p>Tiny paragraph one.</p><p>Another short one.</p><p>Still too short.</p><p>Nope.</p></body></html>`

	_, err := newTestService(&mockFetcher{body: page}, 8).Extract(context.Background(), "https://example.com/a", interfaces.ExtractOptions{})

	require.Error(t, err)
	assert.True(t, coreerrors.IsExtractionInsufficient(err))
}

func TestExtract_TitleWithoutBody(t *testing.T) {
	page := `<html><head><title>Live: election results as they arrive</title></head><body><p>Loading.</p></body></html>`

	got, err := newTestService(&mockFetcher{body: page}, 8).Extract(context.Background(), "https://example.com/live", interfaces.ExtractOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Live: election results as they arrive", got.Title)
	assert.Empty(t, got.BodyText)
	assert.Zero(t, got.WordCount)
}

func TestExtract_ImageCapAndDedupe(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<html><head><title>Photo gallery from the coast</title></head><body><article>`)
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&b, `<figure><img src="https://img.example.com/gallery/photo-%d.jpg"></figure>`, i%6)
	}
	b.WriteString(`</article></body></html>`)

	got, err := newTestService(&mockFetcher{body: b.String()}, 4).Extract(context.Background(), "https://example.com/gallery", interfaces.ExtractOptions{})
	require.NoError(t, err)

	assert.Len(t, got.Images, 4)
	seen := map[string]bool{}
	for _, img := range got.Images {
		assert.False(t, seen[img], "duplicate image %s", img)
		seen[img] = true
	}
	assert.Equal(t, "https://img.example.com/gallery/photo-0.jpg", got.Images[0])
}

func TestExtract_HostOverrideTriedFirst(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<html><head><title>Override selection check</title></head><body><article>`)
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, "<p>Decoy paragraph number %d inside the generic article container element.</p>", i)
	}
	b.WriteString(`</article>`)
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, `<div data-component="text-block"><p>Real story paragraph number %d inside the publisher text block.</p></div>`, i)
	}
	b.WriteString(`</body></html>`)
	page := b.String()

	bbc, err := newTestService(&mockFetcher{body: page}, 8).Extract(context.Background(), "https://www.bbc.co.uk/news/articles/x", interfaces.ExtractOptions{})
	require.NoError(t, err)
	assert.Contains(t, bbc.BodyText, "Real story")
	assert.NotContains(t, bbc.BodyText, "Decoy")

	generic, err := newTestService(&mockFetcher{body: page}, 8).Extract(context.Background(), "https://example.com/news/x", interfaces.ExtractOptions{})
	require.NoError(t, err)
	assert.Contains(t, generic.BodyText, "Decoy")
}

func TestExtract_PageWideParagraphFallback(t *testing.T) {
	page := `<html><head><title>Plain layout without containers</title></head><body>
<div class="wrapper"><p>` + longParagraph + `</p><p>` + longParagraph + ` Again.</p></div></body></html>`

	got, err := newTestService(&mockFetcher{body: page}, 8).Extract(context.Background(), "https://example.com/a", interfaces.ExtractOptions{})
	require.NoError(t, err)

	assert.Contains(t, got.BodyText, "Again.")
}

func TestExtract_LinkedDataAndGazetteer(t *testing.T) {
	page := `<html><head><title>Summit opens with trade on the agenda</title>
<script type="application/ld+json">[{"@type":"WebPage"},{"@type":"NewsArticle","datePublished":"2024-02-03T04:05:06+01:00","author":[{"@type":"Person","name":"Sam Lee"}],"articleSection":"Diplomacy"}]</script>
</head><body><article>
<p>Leaders gathered in New York on Monday for talks that officials said could reshape regional trade.</p>
<p>Delegations from Tokyo and Berlin arrived late after weather delays at several major airports.</p>
<p>The meeting is expected to conclude on Wednesday with a joint statement on tariffs and supply chains.</p>
</article></body></html>`

	got, err := newTestService(&mockFetcher{body: page}, 8).Extract(context.Background(), "https://example.com/a", interfaces.ExtractOptions{})
	require.NoError(t, err)

	assert.Equal(t, "2024-02-03T03:05:06.000Z", got.PublishedAt)
	assert.Equal(t, "Sam Lee", got.Author)
	assert.Equal(t, "New York", got.Location)
	assert.Equal(t, "Diplomacy", got.Category)
}

func TestExtract_CategoryFromURLAndSection(t *testing.T) {
	page := `<html><head><title>Chipmaker unveils new processor line</title>
<meta property="article:section" content="Gadgets"></head><body></body></html>`

	fromPath, err := newTestService(&mockFetcher{body: page}, 8).Extract(context.Background(), "https://example.com/technology/2024/chips", interfaces.ExtractOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Technology", fromPath.Category)

	fromMeta, err := newTestService(&mockFetcher{body: page}, 8).Extract(context.Background(), "https://example.com/p/123", interfaces.ExtractOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Gadgets", fromMeta.Category)
}

func TestExtract_CategoryFromNavBreadcrumb(t *testing.T) {
	pages := map[string]string{
		"aria-label nav":  `<nav aria-label="Breadcrumb"><a href="/">Home</a><a href="/world">Diplomacy</a><a href="#">Story</a></nav>`,
		"role navigation": `<ol class="breadcrumb" role="navigation"><li><a href="/">Home</a></li><li><a href="/world">Diplomacy</a></li><li><a href="#">Story</a></li></ol>`,
	}

	for name, crumbs := range pages {
		t.Run(name, func(t *testing.T) {
			page := `<html><head><title>Envoys meet for ceasefire talks</title></head><body>` + crumbs + `</body></html>`

			content, err := newTestService(&mockFetcher{body: page}, 8).Extract(context.Background(), "https://pub.example/p/123", interfaces.ExtractOptions{})

			require.NoError(t, err)
			assert.Equal(t, "Diplomacy", content.Category)
		})
	}
}

func TestExtract_YearlessDateFallsThrough(t *testing.T) {
	page := `<html><head><title>Council approves new budget</title></head><body>
<span class="date">March 5</span><span class="published">March 5, 2024</span></body></html>`

	content, err := newTestService(&mockFetcher{body: page}, 8).Extract(context.Background(), "https://example.com/p/1", interfaces.ExtractOptions{})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05T00:00:00.000Z", content.PublishedAt)

	page = `<html><head><title>Council approves new budget</title></head><body><span class="date">March 5</span></body></html>`
	content, err = newTestService(&mockFetcher{body: page}, 8).Extract(context.Background(), "https://example.com/p/1", interfaces.ExtractOptions{})
	require.NoError(t, err)
	assert.Empty(t, content.PublishedAt)
}

func TestExtract_NonHTMLIsInsufficient(t *testing.T) {
	f := &mockFetcher{body: "%PDF-1.7", contentType: "application/pdf"}

	_, err := newTestService(f, 8).Extract(context.Background(), "https://example.com/report.pdf", interfaces.ExtractOptions{})

	assert.True(t, coreerrors.IsExtractionInsufficient(err))
}

func TestExtract_FetchErrorPropagates(t *testing.T) {
	f := &mockFetcher{err: &coreerrors.FetchError{Kind: coreerrors.KindBlocked, URL: "https://example.com/a", StatusCode: 403, Attempts: 3}}

	_, err := newTestService(f, 8).Extract(context.Background(), "https://example.com/a", interfaces.ExtractOptions{})

	assert.True(t, coreerrors.IsBlocked(err))
}

func TestExtract_MinimalForwardedToFetcher(t *testing.T) {
	f := &mockFetcher{body: articlePage()}

	_, err := newTestService(f, 8).Extract(context.Background(), "https://example.com/a", interfaces.ExtractOptions{Minimal: true})
	require.NoError(t, err)

	assert.True(t, f.lastOpts.Minimal)
}

func TestExtract_BaseHrefAndSrcset(t *testing.T) {
	page := `<html><head><base href="https://static.example.org/assets/"><title>Images resolved against base</title></head>
<body><article><img srcset="photos/large-one.jpg 1200w, photos/small-one.jpg 400w"></article></body></html>`

	got, err := newTestService(&mockFetcher{body: page}, 8).Extract(context.Background(), "https://example.com/a", interfaces.ExtractOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"https://static.example.org/assets/photos/large-one.jpg"}, got.Images)
}

func TestSelectorsFor(t *testing.T) {
	cnn := selectorsFor("edition.cnn.com")
	assert.Equal(t, "h1.headline__text", cnn.Title[0])
	assert.Equal(t, defaultSelectors.Title, cnn.Title[len(cnn.Title)-len(defaultSelectors.Title):])

	assert.Equal(t, defaultSelectors, selectorsFor("unknown.example"))
	assert.Equal(t, "[data-component=text-block]", selectorsFor("www.bbc.co.uk").Body[0])
}
