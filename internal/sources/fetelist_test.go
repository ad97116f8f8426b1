package sources

import (
	"testing"

	"go.uber.org/zap"
)

const fetelistListingHTML = `<html><body>
<div class="event-card">
  <h2>Trinidad Fete Night</h2>
  <a href="/events/trinidad-fete-night">Get tickets</a>
  <span class="date">Feb 10 2026</span>
  <div class="venue">Queens Park Savannah</div>
  <span class="price">$150</span>
  <img src="/img/fete.jpg">
</div>
<div class="event-card">
  <a href="/events/mystery"><img src="/img/mystery.jpg"></a>
</div>
</body></html>`

func TestFetelistParse(t *testing.T) {
	s := NewFetelist(&stubGetter{}, zap.NewNop())
	events := s.parse(fetelistListingHTML)

	if len(events) != 1 {
		t.Fatalf("expected 1 event (the title-less card is skipped), got %d", len(events))
	}

	ev := events[0]
	if ev.Title != "Trinidad Fete Night" {
		t.Errorf("title = %q", ev.Title)
	}
	if ev.URL != "https://fetelist.com/events/trinidad-fete-night" {
		t.Errorf("url = %q, expected absolute link", ev.URL)
	}
	if ev.DateRaw != "Feb 10 2026" {
		t.Errorf("date_raw = %q", ev.DateRaw)
	}
	if ev.Date != "2026-02-10" {
		t.Errorf("date = %q, expected 2026-02-10", ev.Date)
	}
	if ev.Time != "" {
		t.Errorf("date-only text must not produce a time, got %q", ev.Time)
	}
	if ev.Venue != "Queens Park Savannah" {
		t.Errorf("venue = %q", ev.Venue)
	}
	if ev.Price != "$150" {
		t.Errorf("price = %q", ev.Price)
	}
	if ev.Image != "https://fetelist.com/img/fete.jpg" {
		t.Errorf("image = %q", ev.Image)
	}
	if ev.Source != "fetelist.com" {
		t.Errorf("source = %q", ev.Source)
	}
	if ev.ScrapedAt == "" {
		t.Error("scraped_at not stamped")
	}
}

func TestFetelistFallbackCardScan(t *testing.T) {
	// No primary selector matches; the class-keyword heuristic has to find
	// the cards.
	page := `<html><body>
<div class="fete-listing-row">
  <h3>Jamaica Carnival Kickoff</h3>
  <a href="/events/kickoff">tickets</a>
</div>
<div class="sidebar">unrelated</div>
</body></html>`

	s := NewFetelist(&stubGetter{}, zap.NewNop())
	events := s.parse(page)

	ev := requireEvent(t, events, "Jamaica Carnival Kickoff")
	if ev.URL != "https://fetelist.com/events/kickoff" {
		t.Errorf("url = %q", ev.URL)
	}
}

func TestFetelistPreservesDatetimeAttribute(t *testing.T) {
	page := `<html><body>
<div class="event-card">
  <h2>Soca Cruise</h2>
  <time datetime="2026-03-01T21:00:00">March 1st</time>
</div>
</body></html>`

	s := NewFetelist(&stubGetter{}, zap.NewNop())
	ev := requireEvent(t, s.parse(page), "Soca Cruise")

	if ev.DateRaw != "2026-03-01T21:00:00" {
		t.Errorf("datetime attribute should win over visible text, got %q", ev.DateRaw)
	}
	if ev.Date != "2026-03-01" || ev.Time != "21:00" {
		t.Errorf("normalized to %q / %q", ev.Date, ev.Time)
	}
}

func TestFetelistScrapeFetchFailure(t *testing.T) {
	s := NewFetelist(&stubGetter{}, zap.NewNop())
	if events := s.Scrape(); len(events) != 0 {
		t.Errorf("a failed fetch must yield zero events, got %d", len(events))
	}
}
