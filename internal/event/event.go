package event

import (
	"crypto/md5"
	"fmt"
	"time"
)

// IDLength is the number of hex characters kept from the content digest.
const IDLength = 16

// Event represents a single scraped listing in the common schema shared by
// every source parser. Only Title and Source are guaranteed to be set; all
// other fields are best-effort extractions.
type Event struct {
	ID        string   `json:"id,omitempty" bson:"id,omitempty"`
	Title     string   `json:"title" bson:"title"`
	URL       string   `json:"url,omitempty" bson:"url,omitempty"`
	DateRaw   string   `json:"date_raw,omitempty" bson:"date_raw,omitempty"`
	Date      string   `json:"date,omitempty" bson:"date,omitempty"`
	Time      string   `json:"time,omitempty" bson:"time,omitempty"`
	Venue     string   `json:"venue,omitempty" bson:"venue,omitempty"`
	Price     string   `json:"price,omitempty" bson:"price,omitempty"`
	Image     string   `json:"image,omitempty" bson:"image,omitempty"`
	Host      string   `json:"host,omitempty" bson:"host,omitempty"`
	Lat       *float64 `json:"lat,omitempty" bson:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty" bson:"lng,omitempty"`
	Source    string   `json:"source" bson:"source"`
	ScrapedAt string   `json:"scraped_at" bson:"scraped_at"`
}

// New creates an Event stamped with its source and capture time.
func New(title, source string) Event {
	return Event{
		Title:     title,
		Source:    source,
		ScrapedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// AssignID returns a deterministic content identifier for an event, derived
// from its title, normalized date, and source. The same triple always yields
// the same ID, so re-scraping an unchanged event produces the same identity
// across runs.
func AssignID(ev Event) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s-%s-%s", ev.Title, ev.Date, ev.Source)))
	return fmt.Sprintf("%x", sum)[:IDLength]
}

// HasCoordinates reports whether both latitude and longitude are present.
func (e *Event) HasCoordinates() bool {
	return e.Lat != nil && e.Lng != nil
}

// SetCoordinates attaches a coordinate pair to the event.
func (e *Event) SetCoordinates(lat, lng float64) {
	e.Lat = &lat
	e.Lng = &lng
}

// NormalizeDateFields fills Date and Time from DateRaw. A raw string that
// cannot be parsed leaves both empty; the record keeps its raw text either
// way.
func (e *Event) NormalizeDateFields() {
	if e.DateRaw == "" {
		return
	}
	e.Date, e.Time = NormalizeDate(e.DateRaw)
}
