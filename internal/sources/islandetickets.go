package sources

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/carnivalplanner/carnival-scraper/internal/event"
)

var (
	monthHeadingPattern = regexp.MustCompile(`^(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{4}$`)
	dayOrdinalPattern   = regexp.MustCompile(`(\d{1,2})(st|nd|rd|th)`)
	dayOnlyLinePattern  = regexp.MustCompile(`^\d+(st|nd|rd|th)$`)
	clockLinePattern    = regexp.MustCompile(`(?i)^\d+:\d+[ap]m`)
	monthLinePattern    = regexp.MustCompile(`^(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)`)
	venuePattern        = regexp.MustCompile(`@\s*([^@\n]+?)(?:\s*\d+:\d+|$)`)
	timeRangePattern    = regexp.MustCompile(`(?i)(\d{1,2}:\d{2})([ap]m)\s*-\s*\d{1,2}:\d{2}[ap]m`)
	hostPattern         = regexp.MustCompile(`Hosted by\s+([^\n@]+)`)
)

// IslandETickets scrapes the islandetickets.com homepage calendar. The page
// is a flat sequence of month headings and event links rather than
// self-contained cards: each "Mon YYYY" heading moves a month cursor that
// applies to the link entries after it, and each link's multi-line text
// block is decomposed with regex heuristics. The layout can repeat entries,
// so output is deduplicated by URL.
type IslandETickets struct {
	client  Getter
	log     *zap.Logger
	baseURL string
}

// NewIslandETickets creates the islandetickets.com parser.
func NewIslandETickets(client Getter, log *zap.Logger) *IslandETickets {
	return &IslandETickets{client: client, log: log, baseURL: "https://islandetickets.com"}
}

// Name implements Source.
func (s *IslandETickets) Name() string { return "islandetickets.com" }

// Scrape implements Source.
func (s *IslandETickets) Scrape() []event.Event {
	page, err := s.client.Get(s.baseURL)
	if err != nil {
		s.log.Warn("fetch failed", zap.String("source", s.Name()), zap.Error(err))
		return nil
	}
	events := s.parse(page)
	s.log.Info("source scraped", zap.String("source", s.Name()), zap.Int("events", len(events)))
	return events
}

func (s *IslandETickets) parse(page string) []event.Event {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		s.log.Warn("parse failed", zap.String("source", s.Name()), zap.Error(err))
		return nil
	}

	var (
		events       []event.Event
		currentMonth string
	)

	doc.Find("h5, a").Each(func(i int, el *goquery.Selection) {
		if goquery.NodeName(el) == "h5" {
			heading := strings.TrimSpace(el.Text())
			if monthHeadingPattern.MatchString(heading) {
				currentMonth = heading
			}
			return
		}

		href, _ := el.Attr("href")
		if !strings.Contains(href, "/event/") {
			return
		}
		if ev, ok := s.parseEntry(el, href, currentMonth); ok {
			events = append(events, ev)
		}
	})

	return dedupeByURL(events)
}

// parseEntry decomposes one event link's text block.
func (s *IslandETickets) parseEntry(el *goquery.Selection, href, currentMonth string) (event.Event, bool) {
	lines := textLines(el)
	block := strings.Join(lines, "\n")
	if len(block) < 10 {
		return event.Event{}, false
	}

	title := strings.TrimSpace(el.Find("strong, b").First().Text())
	if title == "" {
		title = pickTitleLine(lines)
	}
	if len(title) < 3 {
		return event.Event{}, false
	}

	ev := event.New(title, s.Name())
	ev.URL = absoluteURL(s.baseURL, href)

	if m := venuePattern.FindStringSubmatch(block); m != nil {
		ev.Venue = strings.TrimSpace(m[1])
	}
	if m := timeRangePattern.FindStringSubmatch(block); m != nil {
		ev.Time = to24Hour(m[1], m[2])
	}
	if m := hostPattern.FindStringSubmatch(block); m != nil {
		ev.Host = strings.TrimSpace(m[1])
	}

	// Day-of-month entries only make sense under a month heading.
	if m := dayOrdinalPattern.FindStringSubmatch(block); m != nil && currentMonth != "" {
		ev.DateRaw = fmt.Sprintf("%s %s", m[1], currentMonth)
		ev.Date, _ = event.NormalizeDate(ev.DateRaw)
	}

	if img, ok := el.Find("img").First().Attr("src"); ok && img != "" {
		ev.Image = absoluteURL(s.baseURL, img)
	}

	return ev, true
}

// pickTitleLine scans a text block for the first line that is not a day
// number, clock time, host credit, venue, or month label.
func pickTitleLine(lines []string) string {
	for _, line := range lines {
		if len(line) <= 5 {
			continue
		}
		if dayOnlyLinePattern.MatchString(line) || clockLinePattern.MatchString(line) || monthLinePattern.MatchString(line) {
			continue
		}
		if strings.HasPrefix(line, "Hosted by") || strings.HasPrefix(line, "@") {
			continue
		}
		return line
	}
	return ""
}

// textLines returns the trimmed, non-empty text nodes under a selection, in
// document order. goquery's Text() concatenates nodes without separators,
// which would glue adjacent fields together.
func textLines(sel *goquery.Selection) []string {
	var lines []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			for _, part := range strings.Split(n.Data, "\n") {
				if t := strings.TrimSpace(part); t != "" {
					lines = append(lines, t)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return lines
}

// to24Hour converts an "h:mm" + am/pm pair to 24-hour clock text.
func to24Hour(clock, meridiem string) string {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return ""
	}
	hour := 0
	fmt.Sscanf(parts[0], "%d", &hour)
	if strings.EqualFold(meridiem, "pm") && hour != 12 {
		hour += 12
	}
	if strings.EqualFold(meridiem, "am") && hour == 12 {
		hour = 0
	}
	return fmt.Sprintf("%02d:%s", hour, parts[1])
}

// dedupeByURL keeps the first occurrence of each URL. The homepage repeats
// entries across sections.
func dedupeByURL(events []event.Event) []event.Event {
	seen := make(map[string]bool)
	unique := make([]event.Event, 0, len(events))
	for _, ev := range events {
		if ev.URL != "" && seen[ev.URL] {
			continue
		}
		seen[ev.URL] = true
		unique = append(unique, ev)
	}
	return unique
}
