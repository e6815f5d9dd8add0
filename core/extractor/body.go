package extractor

import (
	"context"
	"net/url"
	"strings"

	"newslens-api/core/cascade"
	"newslens-api/pkg/utils/html"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

const (
	// minParagraphChars is the shortest paragraph kept in a body
	minParagraphChars = 30

	// minBodyChars is the shortest body text that counts as content
	minBodyChars = 200

	paragraphSeparator = "\n\n"
)

// excludedPhrases mark paragraphs that are page furniture, not story text
var excludedPhrases = []string{
	"advertisement",
	"subscribe",
	"sign up",
	"newsletter",
	"cookie",
	"all rights reserved",
}

// Body strategy names
const (
	bodyPageWide    = "page_paragraphs"
	bodyReadability = "readability"
)

// bodySteps builds the body cascade: containers from the selector set,
// then every paragraph on the page, then readability when enabled
func bodySteps(doc *goquery.Document, containers []string, pageURL *url.URL, useReadability bool) []cascade.Step[string] {
	steps := cascade.Values(containers, func(sel string) string { return sel },
		func(_ context.Context, sel string) (string, bool) {
			return collectParagraphs(doc.Find(sel))
		})

	steps = append(steps, cascade.Step[string]{
		Name: bodyPageWide,
		Run: func(context.Context) (string, bool) {
			return collectParagraphs(doc.Selection)
		},
	})

	if useReadability {
		steps = append(steps, cascade.Step[string]{
			Name: bodyReadability,
			Run: func(context.Context) (string, bool) {
				return readabilityBody(doc, pageURL)
			},
		})
	}

	return steps
}

// collectParagraphs gathers qualifying <p> text under the selection and
// reports whether the joined body is long enough
func collectParagraphs(container *goquery.Selection) (string, bool) {
	if container.Length() == 0 {
		return "", false
	}

	paragraphs := container.Filter("p")
	if paragraphs.Length() == 0 {
		paragraphs = container.Find("p")
	}

	var kept []string
	paragraphs.Each(func(_ int, p *goquery.Selection) {
		if text := html.CollapseSpace(p.Text()); keepParagraph(text) {
			kept = append(kept, text)
		}
	})

	return joinBody(kept)
}

// readabilityBody runs go-readability over the already stripped document
func readabilityBody(doc *goquery.Document, pageURL *url.URL) (string, bool) {
	markup, err := doc.Html()
	if err != nil {
		return "", false
	}

	article, err := readability.FromReader(strings.NewReader(markup), pageURL)
	if err != nil {
		return "", false
	}

	var kept []string
	for _, line := range strings.Split(article.TextContent, "\n") {
		if text := html.CollapseSpace(line); keepParagraph(text) {
			kept = append(kept, text)
		}
	}

	return joinBody(kept)
}

func keepParagraph(text string) bool {
	if runeLen(text) < minParagraphChars {
		return false
	}
	lower := strings.ToLower(text)
	for _, phrase := range excludedPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	return true
}

func joinBody(paragraphs []string) (string, bool) {
	body := strings.Join(dedupeStrings(paragraphs), paragraphSeparator)
	if runeLen(body) < minBodyChars {
		return "", false
	}
	return body, true
}

// dedupeStrings drops repeated paragraphs, keeping the first occurrence
func dedupeStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
