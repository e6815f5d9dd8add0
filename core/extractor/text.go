package extractor

import (
	"strings"
	"unicode/utf8"

	"newslens-api/pkg/utils/html"

	"github.com/PuerkitoBio/goquery"
)

// valueOf reads the useful value of a node: content for meta, datetime
// for time, text otherwise
func valueOf(s *goquery.Selection) string {
	switch goquery.NodeName(s) {
	case "meta":
		return html.CollapseSpace(s.AttrOr("content", ""))
	case "time":
		if v, ok := s.Attr("datetime"); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return html.CollapseSpace(s.Text())
}

// firstValue returns the first value of sel with at least min characters
func firstValue(doc *goquery.Document, sel string, min int) (string, bool) {
	var out string
	doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v := valueOf(s)
		if utf8.RuneCountInString(v) >= min {
			out = v
			return false
		}
		return true
	})
	return out, out != ""
}

// trimSiteName drops a trailing " | Site" or " - Site" from a <title>,
// keeping the original when the remainder would be too short
func trimSiteName(title string, min int) string {
	for _, sep := range []string{" | ", " - ", " – ", " — "} {
		if i := strings.LastIndex(title, sep); i > 0 {
			if head := strings.TrimSpace(title[:i]); utf8.RuneCountInString(head) >= min {
				return head
			}
		}
	}
	return title
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
