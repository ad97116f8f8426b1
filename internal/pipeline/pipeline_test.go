package pipeline

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/carnivalplanner/carnival-scraper/internal/event"
	"github.com/carnivalplanner/carnival-scraper/internal/sources"
	"github.com/carnivalplanner/carnival-scraper/internal/store"
)

// fakeSource emits a fixed event list.
type fakeSource struct {
	name   string
	events []event.Event
}

func (f *fakeSource) Name() string          { return f.name }
func (f *fakeSource) Scrape() []event.Event { return f.events }

// stubGeocoder records lookups and returns fixed coordinates.
type stubGeocoder struct {
	lookups []string
	lat     float64
	lng     float64
	miss    bool
}

func (g *stubGeocoder) Lookup(venue, carnivalID string) (*float64, *float64) {
	g.lookups = append(g.lookups, venue+"|"+carnivalID)
	if g.miss {
		return nil, nil
	}
	lat, lng := g.lat, g.lng
	return &lat, &lng
}

// failStore rejects every write.
type failStore struct{ store.Memory }

func (f *failStore) UpsertCarnival(context.Context, store.CarnivalDoc) error {
	return errors.New("write rejected")
}

func makeEvent(title, venue, date, source string) event.Event {
	ev := event.New(title, source)
	ev.Venue = venue
	ev.Date = date
	return ev
}

func TestRunEndToEnd(t *testing.T) {
	src := &fakeSource{name: "fetelist.com", events: []event.Event{
		makeEvent("Trinidad Fete Night", "Queens Park Savannah", "2026-02-10", "fetelist.com"),
		makeEvent("Generic Concert", "Somewhere", "2026-02-11", "fetelist.com"),
	}}
	geo := &stubGeocoder{lat: 10.67, lng: -61.52}
	mem := store.NewMemory()

	p := New([]sources.Source{src}, geo, mem, zap.NewNop())
	summary := p.Run(context.Background())

	if summary.TotalScraped != 2 {
		t.Errorf("TotalScraped = %d", summary.TotalScraped)
	}
	if summary.Categorized != 1 {
		t.Errorf("Categorized = %d, the generic concert should be dropped", summary.Categorized)
	}
	if summary.PerSource["fetelist.com"] != 2 {
		t.Errorf("PerSource = %v", summary.PerSource)
	}
	if summary.PerRegion["trinidad"] != 1 {
		t.Errorf("PerRegion = %v", summary.PerRegion)
	}
	if summary.RegionsWritten != 1 {
		t.Errorf("RegionsWritten = %d", summary.RegionsWritten)
	}

	if len(geo.lookups) != 1 || geo.lookups[0] != "Queens Park Savannah|trinidad" {
		t.Errorf("expected one geocoding lookup with region context, got %v", geo.lookups)
	}

	docs, _ := mem.AllCarnivals(context.Background())
	if len(docs) != 1 {
		t.Fatalf("expected 1 region doc, got %d", len(docs))
	}
	doc := docs[0]
	if doc.CarnivalID != "trinidad" || doc.EventCount != 1 {
		t.Errorf("doc = %+v", doc)
	}
	if doc.LastScrapedAt == "" {
		t.Error("lastScrapedAt not stamped")
	}

	stored := doc.Events[0]
	if len(stored.ID) != event.IDLength {
		t.Errorf("expected a %d-hex-character ID, got %q", event.IDLength, stored.ID)
	}
	if !stored.HasCoordinates() || *stored.Lat != 10.67 || *stored.Lng != -61.52 {
		t.Error("expected enriched coordinates on the stored event")
	}
	if len(doc.Sources) != 1 || doc.Sources[0] != "fetelist.com" {
		t.Errorf("sources = %v", doc.Sources)
	}
}

func TestRunSkipsGeocodingWhenCoordinatesPresent(t *testing.T) {
	ev := makeEvent("Trinidad Carnival Monday", "Queens Park Savannah", "2026-02-16", "trinijunglejuice.com")
	ev.SetCoordinates(10.6, -61.5)

	src := &fakeSource{name: "trinijunglejuice.com", events: []event.Event{ev}}
	geo := &stubGeocoder{lat: 99, lng: 99}
	mem := store.NewMemory()

	New([]sources.Source{src}, geo, mem, zap.NewNop()).Run(context.Background())

	if len(geo.lookups) != 0 {
		t.Errorf("events with native coordinates must skip the enricher, got %v", geo.lookups)
	}

	docs, _ := mem.AllCarnivals(context.Background())
	stored := docs[0].Events[0]
	if *stored.Lat != 10.6 || *stored.Lng != -61.5 {
		t.Errorf("native coordinates must be preserved exactly, got [%g, %g]", *stored.Lat, *stored.Lng)
	}
}

func TestRunGeocoderMissLeavesCoordinatesAbsent(t *testing.T) {
	src := &fakeSource{name: "fetelist.com", events: []event.Event{
		makeEvent("Barbados Crop Over Jam", "Somewhere Obscure", "2026-08-01", "fetelist.com"),
	}}
	geo := &stubGeocoder{miss: true}
	mem := store.NewMemory()

	New([]sources.Source{src}, geo, mem, zap.NewNop()).Run(context.Background())

	docs, _ := mem.AllCarnivals(context.Background())
	if docs[0].Events[0].HasCoordinates() {
		t.Error("a failed lookup must leave coordinates absent, not zeroed")
	}
}

func TestRunDoesNotTouchRegionsAbsentFromRun(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	prior := store.CarnivalDoc{
		CarnivalID: "bahamas",
		EventCount: 2,
		Events: []event.Event{
			{Title: "Junkanoo Rush", Source: "fetelist.com"},
			{Title: "Nassau Boat Ride", Source: "islandetickets.com"},
		},
	}
	if err := mem.UpsertCarnival(ctx, prior); err != nil {
		t.Fatalf("seeding failed: %v", err)
	}

	src := &fakeSource{name: "fetelist.com", events: []event.Event{
		makeEvent("Kingston Soca Wednesdays", "Hope Gardens, Kingston", "2026-04-01", "fetelist.com"),
		makeEvent("Montego Bay Cooler Fete", "", "2026-04-02", "fetelist.com"),
		makeEvent("Jamaica Carnival Road March", "Kingston", "2026-04-03", "fetelist.com"),
	}}
	New([]sources.Source{src}, &stubGeocoder{miss: true}, mem, zap.NewNop()).Run(ctx)

	docs, _ := mem.AllCarnivals(ctx)
	byID := make(map[string]store.CarnivalDoc)
	for _, doc := range docs {
		byID[doc.CarnivalID] = doc
	}

	if got := byID["jamaica"]; got.EventCount != 3 {
		t.Errorf("jamaica eventCount = %d, expected 3", got.EventCount)
	}
	bahamas := byID["bahamas"]
	if len(bahamas.Events) != 2 || bahamas.Events[0].Title != "Junkanoo Rush" {
		t.Errorf("bahamas doc must be untouched by a run with no bahamas events: %+v", bahamas)
	}
}

func TestRunCollectsDistinctSources(t *testing.T) {
	srcs := []sources.Source{
		&fakeSource{name: "fetelist.com", events: []event.Event{
			makeEvent("Tobago Blue Food Fete", "Pigeon Point", "2026-10-01", "fetelist.com"),
		}},
		&fakeSource{name: "islandetickets.com", events: []event.Event{
			makeEvent("Tobago Jazz Lime", "Store Bay", "2026-10-02", "islandetickets.com"),
			makeEvent("Tobago Sunset Cruise", "Scarborough", "2026-10-03", "islandetickets.com"),
		}},
	}
	mem := store.NewMemory()
	New(srcs, &stubGeocoder{miss: true}, mem, zap.NewNop()).Run(context.Background())

	docs, _ := mem.AllCarnivals(context.Background())
	if len(docs) != 1 {
		t.Fatalf("expected all events in one region, got %d docs", len(docs))
	}
	want := []string{"fetelist.com", "islandetickets.com"}
	got := docs[0].Sources
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("sources = %v, expected %v", got, want)
	}
}

func TestRunWriteFailureDoesNotAbort(t *testing.T) {
	src := &fakeSource{name: "fetelist.com", events: []event.Event{
		makeEvent("Trinidad Fete Night", "", "2026-02-10", "fetelist.com"),
	}}

	summary := New([]sources.Source{src}, &stubGeocoder{miss: true}, &failStore{}, zap.NewNop()).Run(context.Background())

	if summary.Categorized != 1 {
		t.Errorf("Categorized = %d", summary.Categorized)
	}
	if summary.RegionsWritten != 0 {
		t.Errorf("RegionsWritten = %d, expected the failed write to be counted out", summary.RegionsWritten)
	}
}
