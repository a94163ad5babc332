package main

import (
	"github.com/spf13/cobra"
)

var repairFailedCmd = &cobra.Command{
	Use:   "repair-failed",
	Short: "Re-normalize and re-geocode candidates stuck in geocode_failed",
	Long: `repair-failed re-runs normalization and geocoding for candidates in
geocode_failed: their last attempt hit a geocoder error (rate limit,
timeout, circuit breaker trip) or got no result, rather than a scored
mismatch.`,
	RunE: runRepairFailed,
}

func init() {
	rootCmd.AddCommand(repairFailedCmd)
}

func runRepairFailed(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	r := a.newRunner()
	stats, err := r.RepairFailed(cmd.Context())
	if err != nil {
		return err
	}
	recordRunMetrics(a, "repair-failed", stats)
	printRunStats("repair-failed", stats)
	return nil
}
