package sources

import (
	"net/url"

	"go.uber.org/zap"

	"github.com/carnivalplanner/carnival-scraper/internal/event"
	"github.com/carnivalplanner/carnival-scraper/internal/fetch"
)

// Source is the uniform contract every per-site parser satisfies. Scrape
// never returns an error: fetch and parse failures degrade to an empty or
// partial list and are logged, so one broken site cannot abort a run.
type Source interface {
	// Name returns the source identifier stamped on every event.
	Name() string

	// Scrape fetches and parses the source, returning raw events in the
	// common schema.
	Scrape() []event.Event
}

// Getter fetches a URL and returns its body. Satisfied by fetch.Client;
// tests substitute stubs.
type Getter interface {
	Get(url string) (string, error)
}

// All returns the full parser set in its fixed execution order.
func All(log *zap.Logger) []Source {
	client := fetch.New()
	return []Source{
		NewFetelist(client, log),
		NewFrontline(client, log),
		NewIslandETickets(client, log),
		NewTicketFederation(client, log),
		NewTriniJungleJuice(client, log),
		NewSocaIslands(client, log),
	}
}

// absoluteURL resolves href against base, returning href untouched when it
// is already absolute or the base cannot be parsed.
func absoluteURL(base, href string) string {
	if href == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	h, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(h).String()
}
