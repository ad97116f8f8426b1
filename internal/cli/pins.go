package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carnivalplanner/carnival-scraper/internal/event"
	"github.com/carnivalplanner/carnival-scraper/internal/store"
)

const pinSampleSize = 3

// newPinsCmd creates the read-only diagnostic that reports which stored
// events carry coordinates. It never writes.
func newPinsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pins",
		Short: "List stored events that have map coordinates",
		RunE:  runPins,
	}
}

func runPins(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	mongoStore, err := connectStore(ctx)
	if err != nil {
		return err
	}
	defer mongoStore.Close(ctx)

	docs, err := mongoStore.AllCarnivals(ctx)
	if err != nil {
		return fmt.Errorf("reading carnivals: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Checking for events with coordinates...")

	found := false
	for _, doc := range docs {
		geocoded := eventsWithCoordinates(doc)
		if len(geocoded) == 0 {
			continue
		}
		found = true

		fmt.Fprintf(out, "Carnival: %s\n", doc.CarnivalID)
		fmt.Fprintf(out, "  Total events: %d\n", len(doc.Events))
		fmt.Fprintf(out, "  Pins with coordinates: %d\n", len(geocoded))
		for i, ev := range geocoded {
			if i == pinSampleSize {
				break
			}
			fmt.Fprintf(out, "    - %s (%s) at [%g, %g]\n", ev.Title, ev.Source, *ev.Lat, *ev.Lng)
		}
	}

	if !found {
		fmt.Fprintln(out, "No events with coordinates found yet. Run the scraper to populate them.")
	}
	return nil
}

func eventsWithCoordinates(doc store.CarnivalDoc) []event.Event {
	var geocoded []event.Event
	for _, ev := range doc.Events {
		if ev.HasCoordinates() {
			geocoded = append(geocoded, ev)
		}
	}
	return geocoded
}
