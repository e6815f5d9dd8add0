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

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/rss"
)

const feedAccept = "application/rss+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"

// Custom keys carrying the RSS <source> element through translation
const (
	customSourceName = "source"
	customSourceURL  = "sourceUrl"
)

// feedURL builds the RSS search feed URL for q
func feedURL(base string, q interfaces.CandidateQuery) string {
	v := url.Values{}
	v.Set("q", q.Query)
	v.Set("hl", q.Lang+"-"+q.Country)
	v.Set("gl", q.Country)
	v.Set("ceid", q.Country+":"+q.Lang)
	return strings.TrimRight(base, "/") + "/rss/search?" + v.Encode()
}

// sourceTranslator keeps the per-item <source> element, which the
// universal feed model has no field for
type sourceTranslator struct {
	gofeed.DefaultRSSTranslator
}

func (t *sourceTranslator) Translate(feed interface{}) (*gofeed.Feed, error) {
	out, err := t.DefaultRSSTranslator.Translate(feed)
	if err != nil {
		return nil, err
	}

	raw, ok := feed.(*rss.Feed)
	if !ok {
		return out, nil
	}
	for i, item := range raw.Items {
		if item.Source == nil || i >= len(out.Items) {
			continue
		}
		if out.Items[i].Custom == nil {
			out.Items[i].Custom = make(map[string]string)
		}
		out.Items[i].Custom[customSourceName] = strings.TrimSpace(item.Source.Title)
		out.Items[i].Custom[customSourceURL] = strings.TrimSpace(item.Source.URL)
	}
	return out, nil
}

// readFeed fetches and parses the RSS search feed
func (s *Service) readFeed(ctx context.Context, q interfaces.CandidateQuery) ([]domain.CandidateItem, error) {
	target := feedURL(s.cfg.FeedBaseURL, q)

	opts := s.cfg.Fetch
	opts.Accept = feedAccept
	opts.SkipBlockDetection = true

	res, err := s.deps.Fetcher.Fetch(ctx, target, opts)
	if err != nil {
		return nil, err
	}

	items, err := parseFeed(res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", target, err)
	}

	s.logger.Debug("Read search feed", map[string]interface{}{
		"url":   target,
		"items": len(items),
	})
	return items, nil
}

// parseFeed converts feed entries to candidates, dropping entries
// without a title or link
func parseFeed(body []byte) ([]domain.CandidateItem, error) {
	parser := gofeed.NewParser()
	parser.RSSTranslator = &sourceTranslator{}

	feed, err := parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	items := make([]domain.CandidateItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		if c, ok := candidateFromItem(item); ok {
			items = append(items, c)
		}
	}
	return items, nil
}

func candidateFromItem(item *gofeed.Item) (domain.CandidateItem, bool) {
	title := html.CollapseSpace(html.DecodeEntities(item.Title))
	link := strings.TrimSpace(item.Link)
	if title == "" || link == "" {
		return domain.CandidateItem{}, false
	}

	source := item.Custom[customSourceName]
	title, suffix := splitSourceSuffix(title, source)
	if source == "" {
		source = suffix
	}

	c := domain.CandidateItem{
		Title:       title,
		FeedLink:    link,
		SourceName:  source,
		SourceURL:   item.Custom[customSourceURL],
		Description: html.StripHTML(item.Description),
		Hint:        domain.HintRSS,
	}

	switch {
	case item.PublishedParsed != nil:
		t := item.PublishedParsed.UTC()
		c.PublishedAt = &t
	case item.Published != "":
		if t := timeutil.ParseFlexibleTime(item.Published); !t.IsZero() {
			c.PublishedAt = &t
		}
	}

	return c, true
}

// splitSourceSuffix removes a trailing " - Source" from title. With a
// known source only that name is removed; otherwise the last segment is
// taken as the source.
func splitSourceSuffix(title, source string) (string, string) {
	if source != "" {
		if head, ok := strings.CutSuffix(title, " - "+source); ok && strings.TrimSpace(head) != "" {
			return strings.TrimSpace(head), source
		}
		return title, source
	}

	i := strings.LastIndex(title, " - ")
	if i <= 0 {
		return title, ""
	}
	suffix := strings.TrimSpace(title[i+3:])
	if suffix == "" || len(strings.Fields(suffix)) > 5 {
		return title, ""
	}
	return strings.TrimSpace(title[:i]), suffix
}
