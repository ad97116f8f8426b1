// Package fetch provides the rate-limited HTTP page fetcher shared by all
// source parsers.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// UserAgent identifies the scraper to every site it touches.
	UserAgent = "CarnivalPlannerBot/1.0 (https://carnival-planner.web.app; contact@carnival-planner.web.app)"

	// RateLimitDelay is the fixed pause applied before every request. It is
	// a simple global rate limit, not a per-host token bucket; the target
	// sites have low or undocumented concurrency tolerance.
	RateLimitDelay = 2 * time.Second

	// Timeout bounds each request.
	Timeout = 30 * time.Second
)

// Client fetches pages sequentially with a fixed pre-request delay.
type Client struct {
	httpClient *http.Client
	delay      time.Duration
	sleep      func(time.Duration)
}

// New creates a fetcher with the default rate limit and timeout.
func New() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: Timeout},
		delay:      RateLimitDelay,
		sleep:      time.Sleep,
	}
}

// NewWithDelay creates a fetcher with a custom pre-request delay. Used by
// tests to avoid real sleeps.
func NewWithDelay(delay time.Duration) *Client {
	c := New()
	c.delay = delay
	return c
}

// Get fetches a page and returns its body as text. The fixed delay is
// applied before the request goes out. Transport errors and non-2xx statuses
// are returned as errors; callers treat a failed page as zero events and
// keep going.
func (c *Client) Get(url string) (string, error) {
	c.sleep(c.delay)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetching %s: unexpected status code %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	return string(body), nil
}
