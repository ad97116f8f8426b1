package sources

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/carnivalplanner/carnival-scraper/internal/event"
)

const fetelistCardCap = 50

// Fetelist scrapes the fetelist.com events listing. It is a selector-card
// parser: candidate cards come from a prioritized selector list with a
// class-keyword scan as the fallback.
type Fetelist struct {
	client  Getter
	log     *zap.Logger
	baseURL string
}

// NewFetelist creates the fetelist.com parser.
func NewFetelist(client Getter, log *zap.Logger) *Fetelist {
	return &Fetelist{client: client, log: log, baseURL: "https://fetelist.com"}
}

// Name implements Source.
func (s *Fetelist) Name() string { return "fetelist.com" }

// Scrape implements Source.
func (s *Fetelist) Scrape() []event.Event {
	html, err := s.client.Get(s.baseURL + "/events")
	if err != nil {
		s.log.Warn("fetch failed", zap.String("source", s.Name()), zap.Error(err))
		return nil
	}
	events := s.parse(html)
	s.log.Info("source scraped", zap.String("source", s.Name()), zap.Int("events", len(events)))
	return events
}

func (s *Fetelist) parse(html string) []event.Event {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		s.log.Warn("parse failed", zap.String("source", s.Name()), zap.Error(err))
		return nil
	}

	cards := doc.Find(".event-card, .event-item, article.event, .fete-card, [data-event]")
	if cards.Length() == 0 {
		// Heuristic fallback: anything whose class hints at a listing.
		cards = doc.Find("article, div").FilterFunction(func(i int, sel *goquery.Selection) bool {
			class, ok := sel.Attr("class")
			return ok && classContainsAny(class, "event", "fete", "party")
		})
	}

	var events []event.Event
	limitCards(cards, fetelistCardCap).Each(func(i int, card *goquery.Selection) {
		title := firstText(card, "h2", "h3", "h4", ".event-title", ".title", `a[href*="event"]`)
		if title == "" {
			return
		}

		ev := event.New(title, s.Name())
		ev.URL = absoluteURL(s.baseURL, firstHref(card, "a[href]"))
		ev.DateRaw = dateText(card, ".date", ".event-date", "time", "[datetime]")
		ev.Venue = firstText(card, ".venue", ".location", ".event-location", "address")
		ev.Price = firstText(card, ".price", ".ticket-price", ".cost")
		if img := firstImageSrc(card); img != "" {
			ev.Image = absoluteURL(s.baseURL, img)
		}
		ev.NormalizeDateFields()

		events = append(events, ev)
	})
	return events
}
