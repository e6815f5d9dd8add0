package extractor

import (
	timeutil "newslens-api/pkg/utils/time"

	"github.com/PuerkitoBio/goquery"
)

// extractPublishedAt tries the date selectors, then JSON-LD, then visible
// date elements, and returns the first parseable value as an ISO instant
func extractPublishedAt(doc *goquery.Document, selectors []string, ld linkedData) string {
	for _, sel := range selectors {
		if iso := firstDate(doc, sel); iso != "" {
			return iso
		}
	}

	if iso := timeutil.NormalizeISO(ld.String("datePublished")); iso != "" {
		return iso
	}

	for _, sel := range dateClassSelectors {
		if iso := firstDate(doc, sel); iso != "" {
			return iso
		}
	}

	return ""
}

func firstDate(doc *goquery.Document, sel string) string {
	var iso string
	doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		iso = timeutil.NormalizeISO(valueOf(s))
		return iso == ""
	})
	return iso
}
