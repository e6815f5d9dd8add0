// ABOUTME: HTML utilities for stripping tags and normalising whitespace
// ABOUTME: Used for feed descriptions and extracted text fields

package html

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML removes tags from an HTML fragment and returns its text with
// entities decoded and whitespace collapsed
func StripHTML(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return CollapseSpace(DecodeEntities(fragment))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return CollapseSpace(fragment)
	}
	doc.Find("script, style").Remove()

	return CollapseSpace(doc.Text())
}

// DecodeEntities decodes HTML entities in plain text
func DecodeEntities(text string) string {
	if !strings.Contains(text, "&") {
		return text
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<p>" + text + "</p>"))
	if err != nil {
		return text
	}
	return doc.Find("p").Text()
}

// CollapseSpace trims s and replaces every whitespace run with one space
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
