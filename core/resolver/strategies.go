package resolver

import (
	"bytes"
	"encoding/base64"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// redirectParams may carry the target of a redirect link, in order
var redirectParams = []string{"url", "q", "u", "continue", "adurl", "dest"}

// articleHints are substrings that make a script URL look like an article
var articleHints = []string{"news", "article", "story", "/20", ".html"}

var (
	articleToken  = regexp.MustCompile(`/articles/([A-Za-z0-9_-]{16,})`)
	refreshTarget = regexp.MustCompile(`(?i)url\s*=\s*['"]?([^'"\s;]+)`)
	scriptURL     = regexp.MustCompile(`https?://[^\s"'<>()\[\]{}\\,]+`)
	scriptEscapes = strings.NewReplacer(`\/`, `/`, `\u002f`, `/`, `\u002F`, `/`, `\u0026`, `&`, `\u003d`, `=`, `\u003D`, `=`)
)

// page is the aggregator response shared by the network strategies.
// location is set when the redirect chain ends on a publisher URL.
type page struct {
	base     *url.URL
	location string
	doc      *goquery.Document
}

// fromQueryString decodes a target carried in the link's query string
func fromQueryString(link *url.URL, hosts *Hosts) (string, bool) {
	values := link.Query()
	for _, key := range redirectParams {
		for _, v := range values[key] {
			if target, ok := absoluteURL(v); ok && hosts.isPublisherURL(target) {
				return target, true
			}
		}
	}
	return "", false
}

// fromArticleToken decodes the base64 article token some aggregators put
// in their paths. Older tokens embed the publisher URL verbatim.
func fromArticleToken(link *url.URL, hosts *Hosts) (string, bool) {
	m := articleToken.FindStringSubmatch(link.Path)
	if m == nil {
		return "", false
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(m[1], "="))
	if err != nil {
		return "", false
	}

	start := bytes.Index(raw, []byte("http"))
	if start < 0 {
		return "", false
	}
	end := start
	for end < len(raw) && raw[end] > 0x20 && raw[end] < 0x7f {
		end++
	}

	target, ok := absoluteURL(string(raw[start:end]))
	if !ok || !hosts.isPublisherURL(target) {
		return "", false
	}
	return target, true
}

// fromMetaRefresh reads the url= fragment of a meta refresh directive
func fromMetaRefresh(p *page, hosts *Hosts) (string, bool) {
	if p.doc == nil {
		return "", false
	}

	var target string
	p.doc.Find("meta[http-equiv]").EachWithBreak(func(_ int, m *goquery.Selection) bool {
		if !strings.EqualFold(strings.TrimSpace(m.AttrOr("http-equiv", "")), "refresh") {
			return true
		}
		match := refreshTarget.FindStringSubmatch(m.AttrOr("content", ""))
		if match == nil {
			return true
		}
		if abs := resolveRef(p.base, match[1]); hosts.isPublisherURL(abs) {
			target = abs
			return false
		}
		return true
	})

	return target, target != ""
}

// fromCanonical reads <link rel="canonical">, then og:url
func fromCanonical(p *page, hosts *Hosts) (string, bool) {
	if p.doc == nil {
		return "", false
	}

	candidates := []string{
		p.doc.Find(`link[rel="canonical"]`).First().AttrOr("href", ""),
		p.doc.Find(`meta[property="og:url"]`).First().AttrOr("content", ""),
	}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if abs := resolveRef(p.base, c); hosts.isPublisherURL(abs) {
			return abs, true
		}
	}
	return "", false
}

// fromScripts scans inline script text for an absolute publisher URL
// that looks like an article
func fromScripts(p *page, hosts *Hosts) (string, bool) {
	if p.doc == nil {
		return "", false
	}

	var target string
	p.doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if _, external := s.Attr("src"); external {
			return true
		}
		text := scriptEscapes.Replace(s.Text())
		for _, raw := range scriptURL.FindAllString(text, -1) {
			if candidate, ok := articleCandidate(raw, hosts); ok {
				target = candidate
				return false
			}
		}
		return true
	})

	return target, target != ""
}

// articleCandidate filters a URL found in script text
func articleCandidate(raw string, hosts *Hosts) (string, bool) {
	raw = strings.TrimRight(raw, ".;:")
	u, err := url.Parse(raw)
	if err != nil || !hosts.isPublisherURL(raw) || isStaticAsset(u) {
		return "", false
	}

	lower := strings.ToLower(u.Host + u.Path)
	for _, hint := range articleHints {
		if strings.Contains(lower, hint) {
			return u.String(), true
		}
	}
	return "", false
}

// absoluteURL accepts v when it is, possibly after one more unescape, an
// absolute http(s) URL
func absoluteURL(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if lower := strings.ToLower(v); strings.HasPrefix(lower, "http%3a") || strings.HasPrefix(lower, "https%3a") {
		if unescaped, err := url.QueryUnescape(v); err == nil {
			v = unescaped
		}
	}

	u, err := url.Parse(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}
	return u.String(), true
}

// resolveRef makes ref absolute against base. Returns "" when ref is unusable.
func resolveRef(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}
