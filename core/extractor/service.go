// ABOUTME: Content extractor turns article pages into structured content
// ABOUTME: Strips boilerplate, then runs host-aware selector cascades per field

package extractor

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"newslens-api/core/cascade"
	"newslens-api/core/domain"
	coreerrors "newslens-api/core/errors"
	"newslens-api/core/interfaces"
	"newslens-api/pkg/featureflags"

	"github.com/PuerkitoBio/goquery"
)

const (
	// minTitleChars is the shortest accepted headline
	minTitleChars = 10

	// minSubtitleChars is the shortest accepted standfirst
	minSubtitleChars = 10

	maxAuthorChars = 100
)

var authorSelectors = []string{
	`meta[name="author"]`,
	`meta[property="article:author"]`,
	"[itemprop=author] [itemprop=name]",
	"[rel=author]",
	".byline__name",
	".author-name",
	".byline",
}

var descriptionSelectors = []string{
	`meta[name="description"]`,
	`meta[property="og:description"]`,
	`meta[name="twitter:description"]`,
}

var bylinePrefix = regexp.MustCompile(`(?i)^by\s+`)

// Config holds extractor settings
type Config struct {
	// ImageCap bounds the number of images per article
	ImageCap int

	// Fetch carries timeout and retry settings for article requests
	Fetch interfaces.FetchOptions
}

// Service implements interfaces.Extractor
type Service struct {
	deps   interfaces.Dependencies
	logger interfaces.Logger
	cfg    Config
	flags  featureflags.Manager
}

// NewService creates an extractor. A nil flag manager uses flag defaults.
func NewService(deps interfaces.Dependencies, cfg Config, flags featureflags.Manager) *Service {
	if cfg.ImageCap <= 0 {
		cfg.ImageCap = DefaultImageCap
	}
	return &Service{
		deps:   deps,
		logger: interfaces.LoggerOrNop(deps.Logger),
		cfg:    cfg,
		flags:  flags,
	}
}

// Extract fetches rawURL and derives structured content from it. A page
// with neither a usable title nor body yields ExtractionInsufficientError.
func (s *Service) Extract(ctx context.Context, rawURL string, opts interfaces.ExtractOptions) (*domain.ExtractedContent, error) {
	if s.deps.Fetcher == nil {
		return nil, fmt.Errorf("extract %s: fetcher not configured", rawURL)
	}

	fetchOpts := s.cfg.Fetch
	fetchOpts.Minimal = opts.Minimal

	res, err := s.deps.Fetcher.Fetch(ctx, rawURL, fetchOpts)
	if err != nil {
		return nil, err
	}

	if !res.IsHTML() {
		return nil, &coreerrors.ExtractionInsufficientError{
			URL:    rawURL,
			Reason: "response is not an HTML document",
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rawURL, err)
	}

	finalURL := res.FinalURL
	if finalURL == "" {
		finalURL = rawURL
	}
	content := s.extractDocument(ctx, doc, finalURL)

	if content.Title == "" && content.BodyText == "" {
		return nil, &coreerrors.ExtractionInsufficientError{
			URL:    rawURL,
			Reason: "no title or body text above threshold",
		}
	}

	s.logger.Debug("Extracted article", map[string]interface{}{
		"url":         rawURL,
		"words":       content.WordCount,
		"images":      len(content.Images),
		"has_date":    content.PublishedAt != "",
		"minimal":     opts.Minimal,
		"source_host": content.SourceHost,
	})

	return content, nil
}

// extractDocument runs every field extractor over a parsed page
func (s *Service) extractDocument(ctx context.Context, doc *goquery.Document, pageURL string) *domain.ExtractedContent {
	base := pageBase(doc, pageURL)
	host := domain.HostOf(pageURL)
	crumb := breadcrumbCategory(doc)

	stripBoilerplate(doc)

	selectors := selectorsFor(host)
	ld := parseLinkedData(doc)

	content := &domain.ExtractedContent{
		SourceHost: host,
		Images:     extractImages(doc, selectors.Images, base, s.cfg.ImageCap),
	}

	content.Title = extractTitle(ctx, doc, selectors.Title)
	content.Subtitle = firstOf(ctx, doc, selectors.Subtitle, minSubtitleChars)
	content.Description = firstOf(ctx, doc, descriptionSelectors, 1)
	content.Author = extractAuthor(ctx, doc, ld)
	content.PublishedAt = extractPublishedAt(doc, selectors.Date, ld)
	content.Category = extractCategory(doc, crumb, base, ld)

	useReadability := featureflags.Enabled(ctx, s.flags, featureflags.ReadabilityFallback)
	if body, strategy, ok := cascade.First(ctx, bodySteps(doc, selectors.Body, base, useReadability)...); ok {
		content.BodyText = body
		content.WordCount = len(strings.Fields(body))
		s.logger.Debug("Body strategy matched", map[string]interface{}{
			"url":      pageURL,
			"strategy": strategy,
		})
	}

	content.Location = extractLocation(doc, content.BodyText)

	if content.Subtitle == content.Title {
		content.Subtitle = ""
	}

	return content
}

// extractTitle runs the title cascade. Values from <title> lose their
// trailing site name.
func extractTitle(ctx context.Context, doc *goquery.Document, selectors []string) string {
	title, _, _ := cascade.First(ctx, cascade.Values(selectors, func(sel string) string { return sel },
		func(_ context.Context, sel string) (string, bool) {
			v, ok := firstValue(doc, sel, minTitleChars)
			if ok && sel == "title" {
				v = trimSiteName(v, minTitleChars)
			}
			return v, ok
		})...)
	return title
}

func extractAuthor(ctx context.Context, doc *goquery.Document, ld linkedData) string {
	author := firstOf(ctx, doc, authorSelectors, 2)
	if author == "" {
		author = ld.String("author")
	}
	author = strings.TrimSpace(bylinePrefix.ReplaceAllString(author, ""))
	if runeLen(author) > maxAuthorChars {
		return ""
	}
	return author
}

// firstOf returns the first selector value with at least min characters
func firstOf(ctx context.Context, doc *goquery.Document, selectors []string, min int) string {
	v, _, _ := cascade.First(ctx, cascade.Values(selectors, func(sel string) string { return sel },
		func(_ context.Context, sel string) (string, bool) {
			return firstValue(doc, sel, min)
		})...)
	return v
}

// pageBase is the URL relative references resolve against: <base href>
// when present, else the page URL
func pageBase(doc *goquery.Document, pageURL string) *url.URL {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = &url.URL{}
	}
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if ref, err := url.Parse(strings.TrimSpace(href)); err == nil {
			return base.ResolveReference(ref)
		}
	}
	return base
}
