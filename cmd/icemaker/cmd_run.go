package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Skatetrax/ice-maker/internal/runner"
)

var (
	runSource     string
	runScrapeOnly bool
	runNoGeocode  bool
	runLimit      int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scrape, normalize, dedup and geocode one or all sources",
	Long: `run fetches every entry a source currently lists, skips anything whose
fingerprint hasn't changed, normalizes and deduplicates what's new, then
geocodes (or source-verifies, when the source supplies coordinates and a
zip) whatever survives.

--source all runs every enabled non-skatetrax source in turn, then
geocode-pending and promote, matching run_pipeline.py's --run-all.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runSource, "source", "", `source name, or "all" (required)`)
	runCmd.Flags().BoolVar(&runScrapeOnly, "scrape-only", false, "fetch and fingerprint only, skip normalize/dedup/geocode")
	runCmd.Flags().BoolVar(&runNoGeocode, "no-geocode", false, "skip geocoding; surviving candidates stay unverified")
	runCmd.Flags().IntVar(&runLimit, "limit", 0, "process at most N new entries (0 = unlimited)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if runSource == "" {
		return fmt.Errorf("--source is required (a source name, or \"all\")")
	}

	a, cleanup, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	opts := runner.Options{ScrapeOnly: runScrapeOnly, NoGeocode: runNoGeocode, Limit: runLimit}

	if runSource == "all" {
		return runAll(cmd.Context(), a, opts)
	}

	f, err := resolveFetcher(runSource)
	if err != nil {
		return err
	}

	r := a.newRunner().WithOptions(opts)
	stats, err := r.RunSource(cmd.Context(), f)
	if err != nil {
		return err
	}
	recordRunMetrics(a, runSource, stats)
	printRunStats(runSource, stats)
	return nil
}

// runAll mirrors run_pipeline.py's _run_all: every enabled, non-skatetrax
// source is scraped in turn, then geocode-pending sweeps anything left
// pending, then promote runs once across everything that's now verified.
func runAll(ctx context.Context, a *app, opts runner.Options) error {
	sources, err := a.store.EnabledSources(ctx, true)
	if err != nil {
		return err
	}

	r := a.newRunner().WithOptions(opts)
	var combined runner.Stats

	for _, src := range sources {
		f, err := resolveFetcher(src.Name)
		if err != nil {
			a.log.Sugar().Warnw("skipping source with no registered fetcher", "source", src.Name, "error", err)
			continue
		}
		stats, err := r.RunSource(ctx, f)
		if err != nil {
			a.log.Sugar().Errorw("source run failed", "source", src.Name, "error", err)
			continue
		}
		recordRunMetrics(a, src.Name, stats)
		combined = addStats(combined, stats)
	}

	if !opts.ScrapeOnly && !opts.NoGeocode {
		gpStats, err := r.GeocodePending(ctx, nil)
		if err != nil {
			return err
		}
		combined = addStats(combined, gpStats)
	}

	printRunStats("all", combined)

	if opts.ScrapeOnly {
		return nil
	}

	promoStats, err := runPromotion(ctx, a)
	if err != nil {
		return err
	}
	printPromoteStats(promoStats)
	return nil
}

func addStats(a, b runner.Stats) runner.Stats {
	return runner.Stats{
		Scraped:         a.Scraped + b.Scraped,
		New:             a.New + b.New,
		Parsed:          a.Parsed + b.Parsed,
		ParseFailed:     a.ParseFailed + b.ParseFailed,
		Rejected:        a.Rejected + b.Rejected,
		SourceVerified:  a.SourceVerified + b.SourceVerified,
		GeocodeMatch:    a.GeocodeMatch + b.GeocodeMatch,
		GeocodeMismatch: a.GeocodeMismatch + b.GeocodeMismatch,
		GeocodeFailed:   a.GeocodeFailed + b.GeocodeFailed,
	}
}

func recordRunMetrics(a *app, source string, stats runner.Stats) {
	a.metrics.RowsScraped.WithLabelValues(source).Add(float64(stats.Scraped))
	a.metrics.RowsNew.WithLabelValues(source).Add(float64(stats.New))
	a.metrics.RowsRejected.WithLabelValues(source, "parse_failure").Add(float64(stats.ParseFailed))
	a.metrics.RowsRejected.WithLabelValues(source, "dedup").Add(float64(stats.Rejected))
	a.metrics.RowsGeocoded.WithLabelValues(source, "match").Add(float64(stats.GeocodeMatch))
	a.metrics.RowsGeocoded.WithLabelValues(source, "mismatch").Add(float64(stats.GeocodeMismatch))
	a.metrics.RowsGeocoded.WithLabelValues(source, "failed").Add(float64(stats.GeocodeFailed))
}

func printRunStats(source string, stats runner.Stats) {
	fmt.Printf("%s: scraped=%d new=%d parsed=%d parse_failed=%d rejected=%d source_verified=%d geocode(match=%d mismatch=%d failed=%d)\n",
		source, stats.Scraped, stats.New, stats.Parsed, stats.ParseFailed, stats.Rejected,
		stats.SourceVerified, stats.GeocodeMatch, stats.GeocodeMismatch, stats.GeocodeFailed)
}
