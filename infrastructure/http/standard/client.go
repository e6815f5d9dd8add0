// ABOUTME: Fetch executor with bounded retries, user-agent rotation and block detection
// ABOUTME: The single network primitive used by the resolver, extractor and reader

package standard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	coreerrors "newslens-api/core/errors"
	"newslens-api/core/interfaces"

	"golang.org/x/net/html/charset"
	"golang.org/x/net/publicsuffix"
)

const defaultAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// ErrTooManyRedirects is returned when the redirect hop limit is exceeded
var ErrTooManyRedirects = errors.New("too many redirects")

// StandardHTTPClient implements interfaces.Fetcher using net/http
type StandardHTTPClient struct {
	client *http.Client
	cfg    Config
	logger interfaces.Logger
	pick   func(n int) int
}

// NewStandardHTTPClient creates a fetch executor. A nil logger disables logging.
func NewStandardHTTPClient(cfg Config, logger interfaces.Logger) *StandardHTTPClient {
	cfg = cfg.WithDefaults()

	// Keeps consent cookies between attempts against the same site
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	var transport http.RoundTripper = http.DefaultTransport.(*http.Transport).Clone()
	if logger != nil {
		transport = &LoggingRoundTripper{Transport: transport, Logger: logger}
	}

	return &StandardHTTPClient{
		client: &http.Client{
			Transport: transport,
			Jar:       jar,
		},
		cfg:    cfg,
		logger: logger,
		pick:   rand.Intn,
	}
}

// Fetch performs a GET with retries. Timeouts, network errors, blocks and
// 5xx responses are retried; attempt n waits (n-1)*RetryDelay first.
// Malformed URLs and 404s fail on the first occurrence.
func (c *StandardHTTPClient) Fetch(ctx context.Context, rawURL string, opts interfaces.FetchOptions) (*interfaces.FetchResult, error) {
	opts = c.withDefaults(opts)

	target, err := parseTarget(rawURL)
	if err != nil {
		return nil, &coreerrors.FetchError{Kind: coreerrors.KindInvalidURL, URL: rawURL, Err: err}
	}

	var lastErr *coreerrors.FetchError
	for attempt := 1; attempt <= opts.MaxRetries; attempt++ {
		if attempt > 1 {
			backoff := time.Duration(attempt-1) * opts.RetryDelay
			c.debug("Retrying fetch", map[string]interface{}{
				"url":     target,
				"attempt": attempt,
				"backoff": backoff.String(),
				"reason":  lastErr.Kind.String(),
			})
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, lastErr
			}
		}

		result, ferr := c.attempt(ctx, target, opts)
		if ferr == nil {
			result.Attempts = attempt
			return result, nil
		}

		ferr.Attempts = attempt
		lastErr = ferr
		if !ferr.Retriable() || ctx.Err() != nil {
			break
		}
	}

	return nil, lastErr
}

// attempt performs one request under its own timeout
func (c *StandardHTTPClient) attempt(ctx context.Context, target string, opts interfaces.FetchOptions) (*interfaces.FetchResult, *coreerrors.FetchError) {
	attemptCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, &coreerrors.FetchError{Kind: coreerrors.KindInvalidURL, URL: target, Err: err}
	}
	c.setHeaders(req, opts)

	client := *c.client
	client.CheckRedirect = redirectPolicy(opts)

	resp, err := client.Do(req)
	if err != nil {
		return nil, classify(target, err)
	}
	defer resp.Body.Close()

	body, truncated, err := c.readBody(resp)
	if err != nil {
		return nil, classify(target, err)
	}
	if truncated {
		c.debug("Response body truncated", map[string]interface{}{
			"url":   target,
			"limit": c.cfg.MaxBodyBytes,
		})
	}

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return nil, &coreerrors.FetchError{
			Kind:       coreerrors.KindBlocked,
			URL:        target,
			StatusCode: resp.StatusCode,
			Err:        errors.New("forbidden by target site"),
		}
	case resp.StatusCode >= 400:
		return nil, &coreerrors.FetchError{
			Kind:       coreerrors.KindHTTP,
			URL:        target,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	result := &interfaces.FetchResult{
		URL:        target,
		FinalURL:   resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		Truncated:  truncated,
	}

	if !opts.SkipBlockDetection && resp.StatusCode < 300 && result.IsHTML() {
		if marker, blocked := detectBlock(body); blocked {
			return nil, &coreerrors.FetchError{
				Kind:       coreerrors.KindBlocked,
				URL:        target,
				StatusCode: resp.StatusCode,
				Err:        fmt.Errorf("block marker %q found in page text", marker),
			}
		}
	}

	return result, nil
}

// setHeaders applies a fresh user agent and the browser-like header set
func (c *StandardHTTPClient) setHeaders(req *http.Request, opts interfaces.FetchOptions) {
	req.Header.Set("User-Agent", c.userAgent())
	accept := opts.Accept
	if accept == "" {
		accept = defaultAccept
	}
	req.Header.Set("Accept", accept)

	if opts.Minimal {
		return
	}

	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
}

func (c *StandardHTTPClient) userAgent() string {
	return c.cfg.UserAgents[c.pick(len(c.cfg.UserAgents))]
}

// readBody decodes the body to UTF-8 and caps its size. One byte past
// the cap is read so a cut body is reported as truncated.
func (c *StandardHTTPClient) readBody(resp *http.Response) ([]byte, bool, error) {
	var reader io.Reader = resp.Body
	if decoded, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type")); err == nil {
		reader = decoded
	}
	body, err := io.ReadAll(io.LimitReader(reader, c.cfg.MaxBodyBytes+1))
	if err != nil {
		return nil, false, err
	}
	if int64(len(body)) > c.cfg.MaxBodyBytes {
		return body[:c.cfg.MaxBodyBytes], true, nil
	}
	return body, false, nil
}

func (c *StandardHTTPClient) withDefaults(opts interfaces.FetchOptions) interfaces.FetchOptions {
	if opts.Timeout <= 0 {
		opts.Timeout = c.cfg.Timeout
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = c.cfg.MaxRetries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = c.cfg.RetryDelay
	}
	if opts.MaxRedirects <= 0 {
		opts.MaxRedirects = c.cfg.MaxRedirects
	}
	return opts
}

func (c *StandardHTTPClient) debug(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, fields)
	}
}

// redirectPolicy returns a CheckRedirect function for the given options
func redirectPolicy(opts interfaces.FetchOptions) func(*http.Request, []*http.Request) error {
	return func(_ *http.Request, via []*http.Request) error {
		if opts.NoRedirects {
			return http.ErrUseLastResponse
		}
		if len(via) >= opts.MaxRedirects {
			return ErrTooManyRedirects
		}
		return nil
	}
}

// parseTarget accepts only absolute http(s) URLs
func parseTarget(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", errors.New("missing host")
	}
	return u.String(), nil
}

// classify maps a transport error to a fetch failure kind
func classify(target string, err error) *coreerrors.FetchError {
	kind := coreerrors.KindNetwork
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = coreerrors.KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = coreerrors.KindTimeout
	case errors.Is(err, ErrTooManyRedirects):
		kind = coreerrors.KindHTTP
	}
	return &coreerrors.FetchError{Kind: kind, URL: target, Err: err}
}
