package main

import (
	"github.com/spf13/cobra"
)

var geocodePendingSource string

var geocodePendingCmd = &cobra.Command{
	Use:   "geocode-pending",
	Short: "Geocode any candidates still in unverified status",
	Long: `geocode-pending re-attempts geocoding for candidates left "unverified"
that have a street address, e.g. after a run with --no-geocode, or entries
that arrived streetless and were later backfilled with an address.`,
	RunE: runGeocodePending,
}

func init() {
	geocodePendingCmd.Flags().StringVar(&geocodePendingSource, "source", "", "restrict to one source (default: all sources)")
	rootCmd.AddCommand(geocodePendingCmd)
}

func runGeocodePending(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	var sourceID *int64
	if geocodePendingSource != "" {
		src, err := a.store.SourceByName(cmd.Context(), geocodePendingSource)
		if err != nil {
			return err
		}
		sourceID = &src.ID
	}

	r := a.newRunner()
	stats, err := r.GeocodePending(cmd.Context(), sourceID)
	if err != nil {
		return err
	}
	recordRunMetrics(a, geocodePendingSourceLabel(), stats)
	printRunStats("geocode-pending", stats)
	return nil
}

func geocodePendingSourceLabel() string {
	if geocodePendingSource == "" {
		return "all"
	}
	return geocodePendingSource
}
