package sources

import (
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/carnivalplanner/carnival-scraper/internal/event"
)

// TriniJungleJuice pulls trinijunglejuice.com listings straight from its
// JSON API, skipping HTML parsing entirely. The API groups events under
// date-labeled buckets; the parser flattens them. Coordinates arrive
// natively with most items, so these events rarely need geocoding.
type TriniJungleJuice struct {
	client Getter
	log    *zap.Logger
	apiURL string
}

// NewTriniJungleJuice creates the trinijunglejuice.com parser.
func NewTriniJungleJuice(client Getter, log *zap.Logger) *TriniJungleJuice {
	return &TriniJungleJuice{
		client: client,
		log:    log,
		apiURL: "https://staging.trinijunglejuice.com/api/events?page=1&items=50&type=all&orderDirection=asc&timestamped=true",
	}
}

// Name implements Source.
func (s *TriniJungleJuice) Name() string { return "trinijunglejuice.com" }

type tjjResponse struct {
	Events []tjjGroup `json:"events"`
}

// tjjGroup is one date bucket, e.g. {"timestamp": "Thursday, January 1,
// 2026", "events": [...]}.
type tjjGroup struct {
	Timestamp string    `json:"timestamp"`
	Events    []tjjItem `json:"events"`
}

type tjjItem struct {
	ID              any         `json:"id"`
	Title           string      `json:"title"`
	RegistrationURL string      `json:"registration_url"`
	StartDatetime   string      `json:"start_datetime"`
	PosterURL       string      `json:"poster_url"`
	Location        tjjLocation `json:"location"`
}

// tjjLocation carries coordinates that the API emits sometimes as numbers
// and sometimes as strings.
type tjjLocation struct {
	Address   string `json:"address"`
	City      string `json:"city"`
	Latitude  any    `json:"latitude"`
	Longitude any    `json:"longitude"`
}

// Scrape implements Source.
func (s *TriniJungleJuice) Scrape() []event.Event {
	body, err := s.client.Get(s.apiURL)
	if err != nil {
		s.log.Warn("fetch failed", zap.String("source", s.Name()), zap.Error(err))
		return nil
	}
	events := s.parse(body)
	s.log.Info("source scraped", zap.String("source", s.Name()), zap.Int("events", len(events)))
	return events
}

func (s *TriniJungleJuice) parse(body string) []event.Event {
	var resp tjjResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		s.log.Warn("parse failed", zap.String("source", s.Name()), zap.Error(err))
		return nil
	}

	var events []event.Event
	for _, group := range resp.Events {
		for _, item := range group.Events {
			if item.Title == "" {
				continue
			}

			ev := event.New(item.Title, s.Name())

			ev.URL = item.RegistrationURL
			if ev.URL == "" {
				ev.URL = fmt.Sprintf("https://trinijunglejuice.com/events/%v", item.ID)
			}

			ev.DateRaw = group.Timestamp
			if ev.DateRaw == "" {
				ev.DateRaw = item.StartDatetime
			}
			if item.StartDatetime != "" {
				ev.Date, ev.Time = event.NormalizeDate(item.StartDatetime)
			}

			ev.Venue = item.Location.Address
			if ev.Venue == "" {
				ev.Venue = item.Location.City
			}
			ev.Image = item.PosterURL

			if lat, ok := toFloat(item.Location.Latitude); ok {
				if lng, ok := toFloat(item.Location.Longitude); ok {
					ev.SetCoordinates(lat, lng)
				}
			}

			events = append(events, ev)
		}
	}
	return events
}

// toFloat coerces the loosely-typed numeric values the ticketing APIs emit.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
