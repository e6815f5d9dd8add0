package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultImageCap bounds the number of images per article
const DefaultImageCap = 8

// minImageURLChars rejects truncated or placeholder values
const minImageURLChars = 20

// imageAttrs are read in order; srcset is handled separately
var imageAttrs = []string{"src", "data-src", "data-lazy-src", "data-original"}

// imageBlacklist rejects decorative images by URL substring
var imageBlacklist = []string{
	"logo", "icon", "avatar", "placeholder", "sprite", "pixel", "spacer", "1x1", "blank.gif",
}

// extractImages runs the image selectors in order and returns absolute,
// deduplicated URLs, never more than limit
func extractImages(doc *goquery.Document, selectors []string, base *url.URL, limit int) []string {
	if limit <= 0 {
		limit = DefaultImageCap
	}

	images := make([]string, 0, limit)
	seen := make(map[string]struct{})

	for _, sel := range selectors {
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			abs, ok := imageURL(s, base)
			if !ok {
				return true
			}
			if _, dup := seen[abs]; dup {
				return true
			}
			seen[abs] = struct{}{}
			images = append(images, abs)
			return len(images) < limit
		})
		if len(images) >= limit {
			break
		}
	}

	return images
}

// imageURL returns the first usable source of an img or meta node
func imageURL(s *goquery.Selection, base *url.URL) (string, bool) {
	var candidates []string
	if goquery.NodeName(s) == "meta" {
		candidates = append(candidates, s.AttrOr("content", ""))
	} else {
		for _, attr := range imageAttrs {
			candidates = append(candidates, s.AttrOr(attr, ""))
		}
		candidates = append(candidates, firstSrcset(s.AttrOr("srcset", "")), firstSrcset(s.AttrOr("data-srcset", "")))
	}

	for _, c := range candidates {
		if abs, ok := acceptImage(c, base); ok {
			return abs, true
		}
	}
	return "", false
}

// acceptImage resolves raw against base and applies the filters
func acceptImage(raw string, base *url.URL) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(strings.ToLower(raw), "data:") {
		return "", false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}

	abs := u.String()
	if len(abs) < minImageURLChars {
		return "", false
	}
	lower := strings.ToLower(abs)
	for _, bad := range imageBlacklist {
		if strings.Contains(lower, bad) {
			return "", false
		}
	}
	return abs, true
}

// firstSrcset returns the URL of the first srcset candidate
func firstSrcset(srcset string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(srcset), ",")
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
