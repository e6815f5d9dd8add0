package extractor

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"newslens-api/pkg/utils/html"

	"github.com/PuerkitoBio/goquery"
)

// maxDatelineChars rejects dateline elements that hold whole sentences
const maxDatelineChars = 60

var datelineSelectors = []string{
	".dateline",
	".location",
	"[itemprop=contentLocation]",
	"[class*=dateline]",
}

// gazetteer lists place names recognised in body text
var gazetteer = []string{
	"Washington", "New York", "Los Angeles", "San Francisco", "Chicago", "Houston", "Miami",
	"Boston", "Seattle", "Atlanta", "Dallas", "Toronto", "Ottawa", "Montreal", "Vancouver",
	"Mexico City", "Brasilia", "Sao Paulo", "Rio de Janeiro", "Buenos Aires", "Santiago", "Lima", "Bogota",
	"London", "Paris", "Berlin", "Madrid", "Rome", "Brussels", "Amsterdam", "Vienna", "Geneva",
	"Zurich", "Stockholm", "Oslo", "Copenhagen", "Helsinki", "Dublin", "Lisbon", "Athens",
	"Warsaw", "Prague", "Budapest", "Kyiv", "Moscow", "Istanbul", "Ankara",
	"Jerusalem", "Tel Aviv", "Gaza", "Beirut", "Damascus", "Baghdad", "Tehran", "Riyadh",
	"Dubai", "Abu Dhabi", "Doha", "Cairo", "Nairobi", "Lagos", "Johannesburg", "Cape Town", "Addis Ababa",
	"New Delhi", "Mumbai", "Karachi", "Islamabad", "Kabul", "Dhaka",
	"Beijing", "Shanghai", "Hong Kong", "Taipei", "Tokyo", "Seoul", "Pyongyang", "Singapore",
	"Bangkok", "Jakarta", "Manila", "Hanoi", "Kuala Lumpur", "Sydney", "Melbourne", "Canberra", "Auckland",
	"United States", "United Kingdom", "Canada", "Mexico", "Brazil", "Argentina", "France", "Germany",
	"Italy", "Spain", "Ukraine", "Russia", "Poland", "Turkey", "Israel", "Iran", "Iraq", "Syria",
	"Saudi Arabia", "Egypt", "Nigeria", "Kenya", "South Africa", "India", "Pakistan", "Afghanistan",
	"China", "Taiwan", "Japan", "South Korea", "North Korea", "Indonesia", "Philippines", "Vietnam", "Australia",
}

// gazetteerPattern matches gazetteer names on word boundaries, longest
// names first so "New York" wins over "York" style prefixes
var gazetteerPattern = func() *regexp.Regexp {
	names := make([]string, len(gazetteer))
	copy(names, gazetteer)
	sort.SliceStable(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	for i, n := range names {
		names[i] = regexp.QuoteMeta(n)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(names, "|") + `)\b`)
}()

// datelineNoise cuts agency tags and separators off a dateline
var datelineNoise = regexp.MustCompile(`\s*(\(.*|[-–—:|,].*)$`)

// extractLocation reads a dateline element, else the first gazetteer
// name in the body text
func extractLocation(doc *goquery.Document, body string) string {
	for _, sel := range datelineSelectors {
		if loc := firstDateline(doc, sel); loc != "" {
			return loc
		}
	}
	return gazetteerPattern.FindString(body)
}

func firstDateline(doc *goquery.Document, sel string) string {
	var loc string
	doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := valueOf(s)
		if text == "" || runeLen(text) > maxDatelineChars {
			return true
		}
		loc = strings.TrimSpace(datelineNoise.ReplaceAllString(text, ""))
		return loc == ""
	})
	return loc
}

var breadcrumbSelectors = []string{
	".breadcrumb a",
	".breadcrumbs a",
	`nav[aria-label*="breadcrumb"] a`,
	`nav[aria-label*="Breadcrumb"] a`,
	`[itemtype*="BreadcrumbList"] a`,
}

// taxonomy maps URL path segments to category names
var taxonomy = map[string]string{
	"world":         "World",
	"politics":      "Politics",
	"business":      "Business",
	"economy":       "Economy",
	"markets":       "Markets",
	"technology":    "Technology",
	"tech":          "Technology",
	"science":       "Science",
	"health":        "Health",
	"sport":         "Sports",
	"sports":        "Sports",
	"entertainment": "Entertainment",
	"culture":       "Culture",
	"arts":          "Arts",
	"opinion":       "Opinion",
	"travel":        "Travel",
	"climate":       "Climate",
	"environment":   "Environment",
	"education":     "Education",
	"lifestyle":     "Lifestyle",
	"media":         "Media",
	"us":            "US",
	"uk":            "UK",
	"europe":        "Europe",
	"asia":          "Asia",
	"africa":        "Africa",
	"middle-east":   "Middle East",
	"middleeast":    "Middle East",
	"australia":     "Australia",
}

// breadcrumbCategory returns the second-to-last crumb of the first trail
// with at least two entries. It must run before stripBoilerplate, which
// removes nav and [role=navigation] containers.
func breadcrumbCategory(doc *goquery.Document) string {
	for _, sel := range breadcrumbSelectors {
		var crumbs []string
		doc.Find(sel).Each(func(_ int, a *goquery.Selection) {
			if text := html.CollapseSpace(a.Text()); text != "" {
				crumbs = append(crumbs, text)
			}
		})
		if len(crumbs) >= 2 {
			return crumbs[len(crumbs)-2]
		}
	}
	return ""
}

// extractCategory takes the breadcrumb crumb, then the URL path, then
// the article:section meta tag
func extractCategory(doc *goquery.Document, crumb string, pageURL *url.URL, ld linkedData) string {
	if crumb != "" {
		return crumb
	}

	if pageURL != nil {
		for _, segment := range strings.Split(strings.ToLower(pageURL.Path), "/") {
			if name, ok := taxonomy[segment]; ok {
				return name
			}
		}
	}

	if section, ok := firstValue(doc, `meta[property="article:section"]`, 1); ok {
		return section
	}

	return ld.String("articleSection")
}
