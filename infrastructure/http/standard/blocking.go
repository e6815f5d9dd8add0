package standard

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockMarkers are phrases that anti-bot interstitials show instead of
// content. Matching is a heuristic and can misfire on pages that merely
// mention these words.
var blockMarkers = []string{"access denied", "blocked", "captcha"}

// maxScanBytes bounds how much page text is scanned for markers
const maxScanBytes = 64 * 1024

// detectBlock scans the visible text of an HTML body for block markers
// and returns the first marker found.
func detectBlock(body []byte) (string, bool) {
	text := visibleText(body)
	if len(text) > maxScanBytes {
		text = text[:maxScanBytes]
	}
	text = strings.ToLower(text)
	for _, marker := range blockMarkers {
		if strings.Contains(text, marker) {
			return marker, true
		}
	}
	return "", false
}

// visibleText returns the title and body text without script or style content
func visibleText(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return string(body)
	}
	doc.Find("script, style, noscript, template").Remove()
	return doc.Find("title").Text() + " " + doc.Find("body").Text()
}
