// Package pipeline runs one full scrape: every source in order, then
// categorization, geocoding enrichment, ID assignment, and persistence.
package pipeline

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/carnivalplanner/carnival-scraper/internal/carnival"
	"github.com/carnivalplanner/carnival-scraper/internal/event"
	"github.com/carnivalplanner/carnival-scraper/internal/sources"
	"github.com/carnivalplanner/carnival-scraper/internal/store"
)

// Geocoder resolves a venue (with region context) to coordinates, or nil
// when the lookup fails or is skipped.
type Geocoder interface {
	Lookup(venue, carnivalID string) (*float64, *float64)
}

// Summary reports the counts of one run.
type Summary struct {
	TotalScraped   int
	Categorized    int
	PerSource      map[string]int
	PerRegion      map[string]int
	RegionsWritten int
}

// Pipeline wires the parsers, enricher, and store together. Execution is
// strictly sequential: one source at a time, one lookup at a time, so the
// fixed rate limits are honored without coordination.
type Pipeline struct {
	sources []sources.Source
	geo     Geocoder
	store   store.Store
	log     *zap.Logger
	now     func() time.Time
}

// New creates a pipeline.
func New(srcs []sources.Source, geo Geocoder, st store.Store, log *zap.Logger) *Pipeline {
	return &Pipeline{sources: srcs, geo: geo, store: st, log: log, now: time.Now}
}

// Run executes the full pipeline once. Per-source and per-record failures
// degrade to missing data; only the store can return an error, and a failed
// region write is logged and skipped rather than aborting the run.
func (p *Pipeline) Run(ctx context.Context) Summary {
	summary := Summary{
		PerSource: make(map[string]int),
		PerRegion: make(map[string]int),
	}

	var all []event.Event
	for _, src := range p.sources {
		events := src.Scrape()
		summary.PerSource[src.Name()] = len(events)
		all = append(all, events...)
	}
	summary.TotalScraped = len(all)
	p.log.Info("scraping complete", zap.Int("total_events", summary.TotalScraped))

	grouped := p.categorize(all, &summary)
	p.persist(ctx, grouped, &summary)

	p.log.Info("run complete",
		zap.Int("scraped", summary.TotalScraped),
		zap.Int("categorized", summary.Categorized),
		zap.Int("regions_written", summary.RegionsWritten),
	)
	return summary
}

// categorize routes events into region buckets, enriching missing
// coordinates and assigning content IDs along the way. Events matching no
// region are dropped silently; that is the expected fate of most listings.
func (p *Pipeline) categorize(all []event.Event, summary *Summary) map[string][]event.Event {
	grouped := make(map[string][]event.Event)
	for _, ev := range all {
		carnivalID, ok := carnival.Categorize(ev)
		if !ok {
			continue
		}

		if !ev.HasCoordinates() {
			if lat, lng := p.geo.Lookup(ev.Venue, carnivalID); lat != nil && lng != nil {
				ev.SetCoordinates(*lat, *lng)
			}
		}

		ev.ID = event.AssignID(ev)
		grouped[carnivalID] = append(grouped[carnivalID], ev)
		summary.Categorized++
		summary.PerRegion[carnivalID]++
	}
	return grouped
}

// persist upserts one aggregate document per region with at least one event
// this run. Regions absent from the run are left untouched.
func (p *Pipeline) persist(ctx context.Context, grouped map[string][]event.Event, summary *Summary) {
	regions := make([]string, 0, len(grouped))
	for id := range grouped {
		regions = append(regions, id)
	}
	sort.Strings(regions)

	scrapedAt := p.now().UTC().Format(time.RFC3339)
	for _, carnivalID := range regions {
		events := grouped[carnivalID]
		doc := store.CarnivalDoc{
			CarnivalID:    carnivalID,
			LastScrapedAt: scrapedAt,
			EventCount:    len(events),
			Events:        events,
			Sources:       uniqueSources(events),
		}
		if err := p.store.UpsertCarnival(ctx, doc); err != nil {
			p.log.Error("carnival write failed", zap.String("carnival", carnivalID), zap.Error(err))
			continue
		}
		summary.RegionsWritten++
		p.log.Info("carnival saved", zap.String("carnival", carnivalID), zap.Int("events", len(events)))
	}
}

// uniqueSources collects the distinct source identifiers present in a
// region's events, sorted for stable output.
func uniqueSources(events []event.Event) []string {
	seen := make(map[string]bool)
	var out []string
	for _, ev := range events {
		if !seen[ev.Source] {
			seen[ev.Source] = true
			out = append(out, ev.Source)
		}
	}
	sort.Strings(out)
	return out
}
