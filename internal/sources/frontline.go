package sources

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/carnivalplanner/carnival-scraper/internal/event"
)

const frontlineCardCap = 30

// Frontline scrapes frontlineticketing.com. The site spreads its Caribbean
// listings across several section pages, so the parser walks a fixed list of
// listing URLs; a page that fails to fetch is skipped, not fatal.
type Frontline struct {
	client  Getter
	log     *zap.Logger
	baseURL string
}

// NewFrontline creates the frontlineticketing.com parser.
func NewFrontline(client Getter, log *zap.Logger) *Frontline {
	return &Frontline{client: client, log: log, baseURL: "https://frontlineticketing.com"}
}

// Name implements Source.
func (s *Frontline) Name() string { return "frontlineticketing.com" }

// Scrape implements Source.
func (s *Frontline) Scrape() []event.Event {
	pages := []string{
		s.baseURL + "/events",
		s.baseURL + "/caribbean",
		s.baseURL + "/carnival",
	}

	var events []event.Event
	for _, page := range pages {
		html, err := s.client.Get(page)
		if err != nil {
			s.log.Warn("fetch failed", zap.String("source", s.Name()), zap.String("url", page), zap.Error(err))
			continue
		}
		events = append(events, s.parse(html)...)
	}
	s.log.Info("source scraped", zap.String("source", s.Name()), zap.Int("events", len(events)))
	return events
}

func (s *Frontline) parse(html string) []event.Event {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		s.log.Warn("parse failed", zap.String("source", s.Name()), zap.Error(err))
		return nil
	}

	var events []event.Event
	cards := doc.Find(".event, .event-card, .ticket-event, article, .product-item")
	limitCards(cards, frontlineCardCap).Each(func(i int, card *goquery.Selection) {
		title := firstText(card, "h2", "h3", "h4", ".event-name", ".title", "a")
		if title == "" {
			return
		}

		ev := event.New(title, s.Name())
		ev.URL = absoluteURL(s.baseURL, firstHref(card, "a[href]"))
		ev.DateRaw = dateText(card, ".date", ".event-date", "time", "[datetime]", ".when")
		ev.Venue = firstText(card, ".venue", ".location", "address", ".where")
		ev.Price = firstText(card, ".price", ".ticket-price", ".amount")
		if img := firstImageSrc(card); img != "" {
			ev.Image = absoluteURL(s.baseURL, img)
		}
		ev.NormalizeDateFields()

		events = append(events, ev)
	})
	return events
}
