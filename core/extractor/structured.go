package extractor

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// linkedData holds the parsed JSON-LD blocks of a page
type linkedData []interface{}

// parseLinkedData decodes every JSON-LD script, skipping malformed ones
func parseLinkedData(doc *goquery.Document) linkedData {
	var out linkedData
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var v interface{}
		if err := json.Unmarshal([]byte(strings.TrimSpace(s.Text())), &v); err == nil {
			out = append(out, v)
		}
	})
	return out
}

// String returns the first string found under key anywhere in the blocks
func (ld linkedData) String(key string) string {
	for _, block := range ld {
		if v := find(block, key); v != nil {
			if s := asString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// find walks objects and arrays depth-first for key
func find(v interface{}, key string) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		if found, ok := t[key]; ok {
			return found
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if found := find(t[k], key); found != nil {
				return found
			}
		}
	case []interface{}:
		for _, child := range t {
			if found := find(child, key); found != nil {
				return found
			}
		}
	}
	return nil
}

// asString flattens the common shapes: a string, an object with a name,
// or a list of either
func asString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]interface{}:
		if name, ok := t["name"].(string); ok {
			return strings.TrimSpace(name)
		}
	case []interface{}:
		for _, item := range t {
			if s := asString(item); s != "" {
				return s
			}
		}
	}
	return ""
}
