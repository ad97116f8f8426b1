package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/carnivalplanner/carnival-scraper/internal/config"
	"github.com/carnivalplanner/carnival-scraper/internal/geocode"
	"github.com/carnivalplanner/carnival-scraper/internal/logging"
	"github.com/carnivalplanner/carnival-scraper/internal/pipeline"
	"github.com/carnivalplanner/carnival-scraper/internal/sources"
	"github.com/carnivalplanner/carnival-scraper/internal/store"
)

const connectTimeout = 10 * time.Second

var (
	flagConfig  string
	flagDryRun  bool
	flagVerbose bool
)

// NewRootCmd creates the root command. Running it with no arguments
// executes the full scrape once and exits, which is what the external
// scheduler invokes daily.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "carnival-scraper",
		Short: "Scrape Caribbean carnival event listings into the document store",
		Long: `Fetches event listings from the supported ticketing sites, normalizes
them into a common schema, classifies each event into a carnival region,
enriches missing coordinates, and upserts one aggregate document per region.`,
		RunE:          runScrape,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "config.yaml", "Path to YAML config file")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Scrape and categorize without writing to the document store")

	cmd.AddCommand(newPinsCmd())
	return cmd
}

// runScrape is the main pipeline entry point.
func runScrape(cmd *cobra.Command, args []string) error {
	log, err := logging.New(flagVerbose)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Sync()

	ctx := context.Background()

	var st store.Store
	if flagDryRun {
		st = store.NewMemory()
	} else {
		mongoStore, err := connectStore(ctx)
		if err != nil {
			return err
		}
		defer mongoStore.Close(ctx)
		st = mongoStore
	}

	p := pipeline.New(sources.All(log), geocode.New(log), st, log)
	summary := p.Run(ctx)

	printSummary(cmd, summary)
	return nil
}

// connectStore loads configuration and opens the document store. Any
// failure here is fatal; the run aborts before a single page is fetched.
func connectStore(ctx context.Context) (*store.Mongo, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	mongoStore, err := store.NewMongo(connectCtx, cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("opening document store: %w", err)
	}
	return mongoStore, nil
}

// printSummary writes the per-source and per-region counts to stdout.
func printSummary(cmd *cobra.Command, summary pipeline.Summary) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Total events scraped: %d\n", summary.TotalScraped)
	for _, name := range sortedKeys(summary.PerSource) {
		fmt.Fprintf(out, "  %s: %d events\n", name, summary.PerSource[name])
	}

	fmt.Fprintf(out, "Categorized events by carnival: %d\n", summary.Categorized)
	for _, id := range sortedKeys(summary.PerRegion) {
		fmt.Fprintf(out, "  %s: %d events\n", id, summary.PerRegion[id])
	}

	fmt.Fprintf(out, "Regions written: %d\n", summary.RegionsWritten)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
