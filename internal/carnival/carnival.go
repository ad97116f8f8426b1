// Package carnival holds the fixed region table and the keyword categorizer
// that routes scraped events into per-carnival buckets.
package carnival

import (
	"strings"

	"github.com/carnivalplanner/carnival-scraper/internal/event"
)

// Carnival is one region bucket. Terms are matched as case-insensitive
// substrings; the first term doubles as the region's display name for
// geocoding queries.
type Carnival struct {
	ID    string
	Terms []string
}

// Table is the fixed, ordered region table. Order matters: when an event's
// text matches several regions, the earliest entry wins.
var Table = []Carnival{
	{ID: "trinidad", Terms: []string{"trinidad", "trini", "port of spain"}},
	{ID: "jamaica", Terms: []string{"jamaica", "kingston", "montego bay"}},
	{ID: "barbados", Terms: []string{"barbados", "crop over", "bridgetown"}},
	{ID: "antigua", Terms: []string{"antigua", "antigua carnival"}},
	{ID: "stlucia", Terms: []string{"st lucia", "saint lucia", "st. lucia"}},
	{ID: "grenada", Terms: []string{"grenada", "spicemas", "spice mas"}},
	{ID: "bahamas", Terms: []string{"bahamas", "nassau"}},
	{ID: "bermuda", Terms: []string{"bermuda"}},
	{ID: "miami", Terms: []string{"miami", "miami carnival"}},
	{ID: "ny-labor-day", Terms: []string{"brooklyn", "new york carnival", "labor day", "eastern parkway"}},
	{ID: "toronto", Terms: []string{"toronto", "caribana"}},
	{ID: "vincymas", Terms: []string{"vincy", "st vincent", "saint vincent"}},
	{ID: "tobago", Terms: []string{"tobago"}},
	{ID: "stkitts-sugar-mas", Terms: []string{"st kitts", "saint kitts", "sugar mas"}},
	{ID: "stmaarten", Terms: []string{"st maarten", "saint maarten", "sint maarten"}},
	{ID: "dominica", Terms: []string{"dominica", "mas domnik"}},
	{ID: "guyana", Terms: []string{"guyana", "mashramani"}},
	{ID: "stthomas", Terms: []string{"st thomas", "saint thomas", "usvi"}},
	{ID: "stcroix", Terms: []string{"st croix", "saint croix"}},
	{ID: "nevis", Terms: []string{"nevis", "culturama"}},
	{ID: "hollywood", Terms: []string{"hollywood carnival", "hollywood florida"}},
	{ID: "tampa", Terms: []string{"tampa", "tampa bay carnival"}},
	{ID: "caymas", Terms: []string{"caymas", "austin"}},
	{ID: "cayman-batabano", Terms: []string{"cayman", "batabano"}},
	{ID: "japan", Terms: []string{"japan caribbean", "tokyo carnival"}},
}

// Categorize returns the first region whose terms appear in the event's
// title or venue text. The second return is false when no region matches;
// uncategorized events are expected and simply dropped from persistence.
func Categorize(ev event.Event) (string, bool) {
	return CategorizeIn(Table, ev)
}

// CategorizeIn runs categorization against an explicit table, preserving its
// iteration order as the tie-break.
func CategorizeIn(table []Carnival, ev event.Event) (string, bool) {
	text := strings.ToLower(ev.Title + " " + ev.Venue)
	for _, c := range table {
		for _, term := range c.Terms {
			if strings.Contains(text, strings.ToLower(term)) {
				return c.ID, true
			}
		}
	}
	return "", false
}

// DisplayName returns the canonical display name for a region, used to add
// geographic context to geocoding queries. Falls back to the raw ID for
// unknown regions.
func DisplayName(carnivalID string) string {
	for _, c := range Table {
		if c.ID == carnivalID && len(c.Terms) > 0 {
			return c.Terms[0]
		}
	}
	return carnivalID
}
