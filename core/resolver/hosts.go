package resolver

import (
	"net"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// ignoredHosts never count as a publisher: trackers, CDNs, schema and
// asset hosts that show up in aggregator markup.
var ignoredHosts = map[string]struct{}{
	"googleusercontent.com": {},
	"gstatic.com":           {},
	"googleapis.com":        {},
	"google-analytics.com":  {},
	"googletagmanager.com":  {},
	"googlesyndication.com": {},
	"googleadservices.com":  {},
	"doubleclick.net":       {},
	"schema.org":            {},
	"w3.org":                {},
	"cloudflare.com":        {},
	"cloudfront.net":        {},
	"akamaihd.net":          {},
	"jsdelivr.net":          {},
	"bing.net":              {},
	"scorecardresearch.com": {},
	"facebook.net":          {},
}

// staticExtensions mark asset URLs found in scripts
var staticExtensions = map[string]struct{}{
	".js": {}, ".css": {}, ".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {},
	".svg": {}, ".webp": {}, ".ico": {}, ".woff": {}, ".woff2": {}, ".ttf": {},
	".json": {}, ".xml": {}, ".mp4": {}, ".mp3": {},
}

// Hosts decides which URLs are aggregator-hosted. Hosts are compared on
// their registrable domain, so news.google.com and www.google.com match
// the same entry.
type Hosts struct {
	domains map[string]struct{}
}

// NewHosts builds the aggregator set. Entries may carry a path
// ("bing.com/news"); only the host part is used.
func NewHosts(entries []string) *Hosts {
	h := &Hosts{domains: make(map[string]struct{}, len(entries))}
	for _, entry := range entries {
		host := strings.ToLower(strings.TrimSpace(entry))
		if i := strings.IndexByte(host, '/'); i >= 0 {
			host = host[:i]
		}
		if host == "" {
			continue
		}
		h.domains[registrable(host)] = struct{}{}
	}
	return h
}

// IsAggregator reports whether rawURL is served by a configured aggregator
func (h *Hosts) IsAggregator(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	_, ok := h.domains[registrable(u.Hostname())]
	return ok
}

// isPublisherURL reports whether candidate is an absolute http(s) URL
// that leaves the aggregator and is not a tracker or CDN host
func (h *Hosts) isPublisherURL(candidate string) bool {
	u, err := url.Parse(candidate)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if !strings.Contains(host, ".") {
		return false
	}
	domain := registrable(host)
	if _, ok := h.domains[domain]; ok {
		return false
	}
	if _, ok := ignoredHosts[domain]; ok {
		return false
	}
	if _, ok := ignoredHosts[host]; ok {
		return false
	}
	return true
}

// isStaticAsset reports whether the URL path ends in an asset extension
func isStaticAsset(u *url.URL) bool {
	_, ok := staticExtensions[strings.ToLower(path.Ext(u.Path))]
	return ok
}

// registrable returns the eTLD+1 of host, or host itself when it has none
func registrable(host string) string {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if net.ParseIP(host) != nil {
		return host
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return domain
}
