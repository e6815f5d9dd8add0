package extractor

import "github.com/PuerkitoBio/goquery"

// boilerplateSelectors match page chrome removed before field extraction
var boilerplateSelectors = []string{
	"style", "noscript", "template", "iframe", "object", "embed",
	"video", "audio", "svg", "canvas", "form", "button", "select",
	"nav", "aside", "footer",
	"[role=navigation]", "[role=complementary]", "[role=contentinfo]",
	".ad", ".ads", ".advert", ".advertisement", "[class^=ad-]", "[class*=' ad-']", "[id^=ad-]",
	"[class*=advert]", "[class*=sponsor]", "[class*=promo]",
	"[class*=social]", "[class*=share]",
	"[class*=comment]", "[id*=comment]",
	"[class*=newsletter]", "[class*=subscribe]",
	"[class*=related]", "[class*=cookie]", "[class*=consent]",
	"[aria-hidden=true]",
}

// protected elements are never removed even when a class pattern matches
const protected = "html, head, body, article, main"

// stripBoilerplate removes non-article nodes in place. Structured data
// scripts are kept; every other script goes.
func stripBoilerplate(doc *goquery.Document) {
	doc.Find("script").Not(`[type="application/ld+json"]`).Remove()

	for _, sel := range boilerplateSelectors {
		doc.Find(sel).Not(protected).Remove()
	}

	// Site headers go; article headers hold the headline and stay.
	doc.Find("header").FilterFunction(func(_ int, h *goquery.Selection) bool {
		return h.Closest("article, main").Length() == 0 && h.Find("h1").Length() == 0
	}).Remove()
}
