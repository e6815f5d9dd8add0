package reader

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"newslens-api/core/domain"
	"newslens-api/core/interfaces"
	"newslens-api/pkg/utils/html"
	timeutil "newslens-api/pkg/utils/time"

	"github.com/PuerkitoBio/goquery"
)

// resultBlockSelectors match one search result each. The first selector
// yielding any candidate wins.
var resultBlockSelectors = []string{
	"article",
	"[data-n-tid]",
	".g",
	".SoaBEf",
}

var resultTitleSelectors = []string{
	"h3",
	"h4",
	"[role=heading]",
	"a.JtKRv",
	"a.gPFEn",
}

var resultSourceSelectors = []string{
	".vr1PYe",
	".wEwyrc",
	"[data-n-tid]",
	".CEMjEf span",
	".MgUUmf span",
	".NUnG9d span",
}

// searchPageURL builds the rendered search page URL for q
func searchPageURL(base string, q interfaces.CandidateQuery) string {
	v := url.Values{}
	v.Set("q", q.Query)
	v.Set("hl", q.Lang+"-"+q.Country)
	v.Set("gl", q.Country)
	v.Set("ceid", q.Country+":"+q.Lang)
	return strings.TrimRight(base, "/") + "/search?" + v.Encode()
}

// SearchPage lists candidates from the rendered search page, capped at
// q.Limit when set
func (s *Service) SearchPage(ctx context.Context, q interfaces.CandidateQuery) ([]domain.CandidateItem, error) {
	target := searchPageURL(s.cfg.SearchBaseURL, q)

	res, err := s.deps.Fetcher.Fetch(ctx, target, s.cfg.Fetch)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(res.FinalURL)
	if err != nil || res.FinalURL == "" {
		base, _ = url.Parse(target)
	}

	items, err := parseSearchPage(res.Body, base)
	if err != nil {
		return nil, fmt.Errorf("parse search page %s: %w", target, err)
	}
	if q.Limit > 0 && len(items) > q.Limit {
		items = items[:q.Limit]
	}

	s.logger.Debug("Read search page", map[string]interface{}{
		"url":   target,
		"items": len(items),
	})
	return items, nil
}

func parseSearchPage(body []byte, base *url.URL) ([]domain.CandidateItem, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	for _, sel := range resultBlockSelectors {
		var items []domain.CandidateItem
		seen := make(map[string]struct{})
		doc.Find(sel).Each(func(_ int, block *goquery.Selection) {
			c, ok := candidateFromBlock(block, base)
			if !ok {
				return
			}
			if _, dup := seen[c.FeedLink]; dup {
				return
			}
			seen[c.FeedLink] = struct{}{}
			items = append(items, c)
		})
		if len(items) > 0 {
			return items, nil
		}
	}

	return nil, nil
}

func candidateFromBlock(block *goquery.Selection, base *url.URL) (domain.CandidateItem, bool) {
	anchor := resultAnchor(block)
	if anchor == nil {
		return domain.CandidateItem{}, false
	}

	link, ok := absolute(anchor.AttrOr("href", ""), base)
	if !ok {
		return domain.CandidateItem{}, false
	}

	title := firstText(block, resultTitleSelectors)
	if title == "" {
		title = html.CollapseSpace(anchor.Text())
	}
	if title == "" {
		return domain.CandidateItem{}, false
	}

	c := domain.CandidateItem{
		Title:      title,
		FeedLink:   link,
		SourceName: firstText(block, resultSourceSelectors),
		Hint:       domain.HintSearchResult,
	}
	if c.SourceName == title {
		c.SourceName = ""
	}

	if dt, ok := block.Find("time[datetime]").First().Attr("datetime"); ok {
		if t := timeutil.ParseFlexibleTime(dt); !t.IsZero() {
			c.PublishedAt = &t
		}
	}

	return c, true
}

// resultAnchor prefers aggregator article anchors, then any link
func resultAnchor(block *goquery.Selection) *goquery.Selection {
	for _, sel := range []string{`a[href*="/articles/"]`, `a[href*="/read/"]`, "a[href]"} {
		if a := block.Find(sel).First(); a.Length() > 0 {
			return a
		}
	}
	if goquery.NodeName(block) == "a" && block.AttrOr("href", "") != "" {
		return block
	}
	return nil
}

func firstText(block *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		if text := html.CollapseSpace(block.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// absolute resolves "./articles/..." style references against base
func absolute(href string, base *url.URL) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	u := base.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	return u.String(), true
}
