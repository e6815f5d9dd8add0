package extractor

import "strings"

// SelectorSet holds ordered candidate selectors for each field
type SelectorSet struct {
	Title    []string
	Subtitle []string
	Body     []string
	Date     []string
	Images   []string
}

// defaultSelectors are the generic fallbacks tried after any host override
var defaultSelectors = SelectorSet{
	Title: []string{
		"h1.article-title",
		"h1[itemprop=headline]",
		"article h1",
		"h1",
		`meta[property="og:title"]`,
		`meta[name="twitter:title"]`,
		"title",
	},
	Subtitle: []string{
		"h2.subtitle",
		".article-subtitle",
		".standfirst",
		".dek",
		"[itemprop=alternativeHeadline]",
		`meta[name="description"]`,
	},
	Body: []string{
		"article",
		"[itemprop=articleBody]",
		".article-body",
		".story-body",
		".entry-content",
		".post-content",
		"main",
		"#content",
	},
	Date: []string{
		"time[datetime]",
		`meta[property="article:published_time"]`,
		`meta[name="publishdate"]`,
		`meta[name="date"]`,
		`meta[itemprop="datePublished"]`,
		"[itemprop=datePublished]",
	},
	Images: []string{
		`meta[property="og:image"]`,
		"img[class*=article]",
		"img[class*=featured]",
		"figure img",
		"article img",
		"img",
	},
}

// dateClassSelectors are visible date elements tried after structured data
var dateClassSelectors = []string{
	".date",
	".published",
	".timestamp",
	".article-date",
	"[class*=publish-date]",
}

// hostOverrides holds curated selectors for known publishers. Entries are
// keyed by host without "www." and are tried before defaultSelectors.
var hostOverrides = map[string]SelectorSet{
	"bbc.co.uk": {
		Title: []string{"h1#main-heading", "[data-component=headline-block] h1"},
		Body:  []string{"[data-component=text-block]", "article"},
		Date:  []string{"time[data-testid=timestamp]"},
	},
	"bbc.com": {
		Title: []string{"h1#main-heading", "[data-component=headline-block] h1"},
		Body:  []string{"[data-component=text-block]", "article"},
		Date:  []string{"time[data-testid=timestamp]"},
	},
	"reuters.com": {
		Title: []string{"h1[data-testid=Heading]"},
		Body:  []string{"[class*=article-body__content]", "[data-testid=ArticleBody]"},
	},
	"theguardian.com": {
		Title:    []string{"[data-gu-name=headline] h1"},
		Subtitle: []string{"[data-gu-name=standfirst]"},
		Body:     []string{"[data-gu-name=body]", ".article-body-commercial-selector"},
	},
	"nytimes.com": {
		Title:    []string{"h1[data-testid=headline]"},
		Subtitle: []string{"p#article-summary"},
		Body:     []string{"section[name=articleBody]"},
	},
	"apnews.com": {
		Title: []string{"h1.Page-headline"},
		Body:  []string{".RichTextStoryBody", ".Article"},
	},
	"cnn.com": {
		Title: []string{"h1.headline__text", "h1[data-editable=headlineText]"},
		Body:  []string{".article__content"},
		Date:  []string{".timestamp"},
	},
	"washingtonpost.com": {
		Title: []string{"h1[data-qa=headline]"},
		Body:  []string{".article-body", "[data-qa=article-body]"},
	},
	"aljazeera.com": {
		Subtitle: []string{".article__subhead"},
		Body:     []string{".wysiwyg", "#main-content-area"},
	},
	"npr.org": {
		Body: []string{"#storytext"},
	},
	"techcrunch.com": {
		Body: []string{".article-content", ".entry-content"},
	},
	"theverge.com": {
		Body: []string{".duet--article--article-body-component"},
	},
}

// selectorsFor returns the selector set for host: the override for the
// host or its nearest parent domain, followed by the defaults.
func selectorsFor(host string) SelectorSet {
	override, ok := lookupOverride(host)
	if !ok {
		return defaultSelectors
	}
	return SelectorSet{
		Title:    concat(override.Title, defaultSelectors.Title),
		Subtitle: concat(override.Subtitle, defaultSelectors.Subtitle),
		Body:     concat(override.Body, defaultSelectors.Body),
		Date:     concat(override.Date, defaultSelectors.Date),
		Images:   concat(override.Images, defaultSelectors.Images),
	}
}

func lookupOverride(host string) (SelectorSet, bool) {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	for host != "" {
		if set, ok := hostOverrides[host]; ok {
			return set, true
		}
		i := strings.IndexByte(host, '.')
		if i < 0 || strings.Count(host, ".") < 2 {
			break
		}
		host = host[i+1:]
	}
	return SelectorSet{}, false
}

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
