// Package geocode resolves venue names to coordinates through the Nominatim
// search API, under the strict rate limit the service requires.
package geocode

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/carnivalplanner/carnival-scraper/internal/carnival"
	"github.com/carnivalplanner/carnival-scraper/internal/fetch"
)

const (
	// DefaultBaseURL is the public Nominatim endpoint.
	DefaultBaseURL = "https://nominatim.openstreetmap.org"

	// MinInterval is the hard minimum spacing between lookups. Nominatim's
	// usage policy allows at most one request per second; this is not a
	// tunable.
	MinInterval = 1100 * time.Millisecond

	// MinVenueLength is the shortest venue text worth looking up.
	MinVenueLength = 3

	requestTimeout = 10 * time.Second
)

// Client performs rate-limited forward geocoding lookups.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
	interval   time.Duration
	lastCall   time.Time
	sleep      func(time.Duration)
	now        func() time.Time
}

// New creates a geocoding client against the public Nominatim endpoint.
func New(log *zap.Logger) *Client {
	return NewWithBaseURL(log, DefaultBaseURL)
}

// NewWithBaseURL creates a client against a custom endpoint. Used by tests.
func NewWithBaseURL(log *zap.Logger, baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		log:        log,
		interval:   MinInterval,
		sleep:      time.Sleep,
		now:        time.Now,
	}
}

// result is one entry of the Nominatim search response. Coordinates arrive
// as strings.
type result struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Lookup resolves a venue to coordinates, adding the carnival's display name
// to the query for disambiguation ("Queens Park Oval, trinidad"). Venue text
// shorter than MinVenueLength is skipped without a lookup. Any failure,
// timeout, or empty result yields nil coordinates; lookups are never retried
// within a run.
func (c *Client) Lookup(venue, carnivalID string) (*float64, *float64) {
	if len(venue) < MinVenueLength {
		return nil, nil
	}

	query := fmt.Sprintf("%s, %s", venue, carnival.DisplayName(carnivalID))
	c.throttle()

	reqURL := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		c.log.Warn("geocoding request build failed", zap.String("query", query), zap.Error(err))
		return nil, nil
	}
	req.Header.Set("User-Agent", fetch.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("geocoding lookup failed", zap.String("query", query), zap.Error(err))
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("geocoding lookup rejected", zap.String("query", query), zap.Int("status", resp.StatusCode))
		return nil, nil
	}

	var results []result
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		c.log.Warn("geocoding response malformed", zap.String("query", query), zap.Error(err))
		return nil, nil
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lng, lngErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lngErr != nil {
		c.log.Warn("geocoding coordinates malformed", zap.String("query", query))
		return nil, nil
	}
	return &lat, &lng
}

// throttle blocks until at least the minimum interval has elapsed since the
// previous lookup.
func (c *Client) throttle() {
	if !c.lastCall.IsZero() {
		if elapsed := c.now().Sub(c.lastCall); elapsed < c.interval {
			c.sleep(c.interval - elapsed)
		}
	}
	c.lastCall = c.now()
}
