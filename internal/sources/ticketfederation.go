package sources

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/carnivalplanner/carnival-scraper/internal/event"
)

const ticketFederationCardCap = 50

// TicketFederation scrapes ticketfederation.com, which renders its listings
// with the EventOn WordPress plugin. The calendar widget omits the year, so
// the parser injects the current year before date normalization.
type TicketFederation struct {
	client  Getter
	log     *zap.Logger
	baseURL string
	now     func() time.Time
}

// NewTicketFederation creates the ticketfederation.com parser.
func NewTicketFederation(client Getter, log *zap.Logger) *TicketFederation {
	return &TicketFederation{
		client:  client,
		log:     log,
		baseURL: "https://www.ticketfederation.com",
		now:     time.Now,
	}
}

// Name implements Source.
func (s *TicketFederation) Name() string { return "ticketfederation.com" }

// Scrape implements Source.
func (s *TicketFederation) Scrape() []event.Event {
	html, err := s.client.Get(s.baseURL + "/upcoming-events/")
	if err != nil {
		s.log.Warn("fetch failed", zap.String("source", s.Name()), zap.Error(err))
		return nil
	}
	events := s.parse(html)
	s.log.Info("source scraped", zap.String("source", s.Name()), zap.Int("events", len(events)))
	return events
}

func (s *TicketFederation) parse(html string) []event.Event {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		s.log.Warn("parse failed", zap.String("source", s.Name()), zap.Error(err))
		return nil
	}

	var events []event.Event
	cards := doc.Find(".eventon_list_event")
	limitCards(cards, ticketFederationCardCap).Each(func(i int, card *goquery.Selection) {
		title := firstText(card, ".evcal_event_title")
		if title == "" {
			return
		}

		ev := event.New(title, s.Name())

		// The visible card is not itself a link; the URL hides in a schema
		// element or in a data attribute on the card.
		link := firstHref(card, `.evo_event_schema a[itemprop="url"]`)
		if link == "" {
			link, _ = card.Attr("data-exurl")
		}
		if link != "" && !strings.HasPrefix(link, "http") {
			link = absoluteURL(s.baseURL, link)
		}
		ev.URL = link

		ev.DateRaw = s.cardDate(card)
		ev.Venue = s.cardVenue(card)
		ev.Image, _ = card.Find(".ev_ftImg").First().Attr("data-img")
		ev.Date, ev.Time = event.NormalizeDate(event.EnsureYear(ev.DateRaw, s.now().Year()))

		events = append(events, ev)
	})
	return events
}

// cardDate assembles a date string from the EventOn day/month elements,
// falling back to the dayblock's data attributes.
func (s *TicketFederation) cardDate(card *goquery.Selection) string {
	day := firstText(card, ".evo_start .date")
	month := firstText(card, ".evo_start .month")
	if day != "" && month != "" {
		return fmt.Sprintf("%s %s", day, month)
	}

	dayblock := card.Find(".evoet_dayblock").First()
	if dayblock.Length() == 0 {
		return ""
	}
	smon, _ := dayblock.Attr("data-smon")
	syr, _ := dayblock.Attr("data-syr")
	if smon == "" {
		return ""
	}
	if day == "" {
		day = "01"
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s %s", day, smon, syr))
}

// cardVenue prefers the location element's data-name attribute over its
// visible text.
func (s *TicketFederation) cardVenue(card *goquery.Selection) string {
	loc := card.Find(".evcal_location").First()
	if loc.Length() == 0 {
		return ""
	}
	if name, ok := loc.Attr("data-name"); ok && strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name)
	}
	return strings.TrimSpace(loc.Text())
}
