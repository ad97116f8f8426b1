package sources

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/carnivalplanner/carnival-scraper/internal/event"
)

// SocaIslands pulls socaislands.com listings from its JSON API. Unlike the
// trinijunglejuice API it returns a flat events array with no date grouping.
type SocaIslands struct {
	client Getter
	log    *zap.Logger
	apiURL string
}

// NewSocaIslands creates the socaislands.com parser.
func NewSocaIslands(client Getter, log *zap.Logger) *SocaIslands {
	return &SocaIslands{
		client: client,
		log:    log,
		apiURL: "https://www.socaislands.com/api/v1/events?upcoming=true&limit=50",
	}
}

// Name implements Source.
func (s *SocaIslands) Name() string { return "socaislands.com" }

type socaResponse struct {
	Events []socaItem `json:"events"`
}

type socaItem struct {
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	StartsAt string    `json:"starts_at"`
	Price    string    `json:"price"`
	Image    string    `json:"image"`
	Venue    socaVenue `json:"venue"`
}

type socaVenue struct {
	Name      string `json:"name"`
	Latitude  any    `json:"latitude"`
	Longitude any    `json:"longitude"`
}

// Scrape implements Source.
func (s *SocaIslands) Scrape() []event.Event {
	body, err := s.client.Get(s.apiURL)
	if err != nil {
		s.log.Warn("fetch failed", zap.String("source", s.Name()), zap.Error(err))
		return nil
	}
	events := s.parse(body)
	s.log.Info("source scraped", zap.String("source", s.Name()), zap.Int("events", len(events)))
	return events
}

func (s *SocaIslands) parse(body string) []event.Event {
	var resp socaResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		s.log.Warn("parse failed", zap.String("source", s.Name()), zap.Error(err))
		return nil
	}

	var events []event.Event
	for _, item := range resp.Events {
		if item.Title == "" {
			continue
		}

		ev := event.New(item.Title, s.Name())
		ev.URL = item.URL
		ev.DateRaw = item.StartsAt
		ev.Venue = item.Venue.Name
		ev.Price = item.Price
		ev.Image = item.Image
		ev.NormalizeDateFields()

		if lat, ok := toFloat(item.Venue.Latitude); ok {
			if lng, ok := toFloat(item.Venue.Longitude); ok {
				ev.SetCoordinates(lat, lng)
			}
		}

		events = append(events, ev)
	}
	return events
}
