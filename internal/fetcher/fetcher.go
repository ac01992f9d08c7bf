package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"aiwire/internal/models"
)

const (
	// BackoffStep is multiplied by the attempt number between retries
	BackoffStep     = 400 * time.Millisecond
	HitsPerPage     = 100
	maxResponseSize = 10 << 20 // 10MB
	userAgent       = "aiwire/1.0"
)

// SleepFunc waits for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// Client issues GET requests with bounded retries and linear backoff
type Client struct {
	httpClient *http.Client
	baseURL    string
	tags       string
	sleep      SleepFunc
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithSleep replaces the backoff sleep, mainly for tests
func WithSleep(sleep SleepFunc) Option {
	return func(c *Client) {
		c.sleep = sleep
	}
}

// WithTags sets the category filter sent with every search query
func WithTags(tags string) Option {
	return func(c *Client) {
		c.tags = tags
	}
}

// New creates a Client for the search API at baseURL
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		tags:       "story",
		sleep:      sleepCtx,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchURL builds the search API URL for one query variant
func (c *Client) SearchURL(query string) string {
	params := url.Values{}
	params.Set("query", query)
	if c.tags != "" {
		params.Set("tags", c.tags)
	}
	params.Set("hitsPerPage", strconv.Itoa(HitsPerPage))
	return c.baseURL + "?" + params.Encode()
}

// FetchText performs up to maxAttempts GETs against rawURL and returns the first
// successful body. Attempt n failing waits BackoffStep*n before attempt n+1.
func (c *Client) FetchText(ctx context.Context, rawURL string, maxAttempts int) (string, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		body, err := c.get(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if attempt < maxAttempts {
			if err := c.sleep(ctx, BackoffStep*time.Duration(attempt)); err != nil {
				return "", &NetworkError{URL: rawURL, Attempts: attempt, Err: err}
			}
		}
	}

	return "", &NetworkError{URL: rawURL, Attempts: maxAttempts, Err: lastErr}
}

// FetchJSON fetches rawURL with retries and decodes the body into v
func (c *Client) FetchJSON(ctx context.Context, rawURL string, maxAttempts int, v any) error {
	body, err := c.FetchText(ctx, rawURL, maxAttempts)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return &ParseError{URL: rawURL, Err: err}
	}
	return nil
}

// Search runs one query variant and returns its hits
func (c *Client) Search(ctx context.Context, query string, maxAttempts int) ([]models.Hit, error) {
	var resp models.SearchResponse
	if err := c.FetchJSON(ctx, c.SearchURL(query), maxAttempts, &resp); err != nil {
		return nil, err
	}
	return resp.Hits, nil
}

func (c *Client) get(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
