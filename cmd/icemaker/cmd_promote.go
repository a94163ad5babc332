package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Skatetrax/ice-maker/internal/promote"
)

var promoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Promote verified candidates into canonical locations",
	Long: `promote runs the three-phase promotion pass: promote-verified (dedup
match against active locations, or mint/adopt a new one), link-duplicates
(attach every dedup-rejected duplicate to its primary's location once
that primary is promoted), and link-wiki (attach unverified streetless
candidates to a matching existing location).`,
	RunE: runPromote,
}

func init() {
	rootCmd.AddCommand(promoteCmd)
}

func runPromote(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	stats, err := runPromotion(cmd.Context(), a)
	if err != nil {
		return err
	}
	printPromoteStats(stats)
	return nil
}

func runPromotion(ctx context.Context, a *app) (promote.Stats, error) {
	peer, peerCleanup, err := a.peerLookup()
	if err != nil {
		return promote.Stats{}, err
	}
	defer peerCleanup()

	p := &promote.Promoter{
		Store:      a.store,
		Peer:       peer,
		Thresholds: a.thresholds(),
		Log:        a.log,
	}
	stats, err := p.Run(ctx)
	if err == nil {
		a.metrics.LocationsPromoted.Add(float64(stats.Phase1NewLocations + stats.Phase1LinkedExisting))
	}
	return stats, err
}

func printPromoteStats(stats promote.Stats) {
	fmt.Printf("promote: phase1(new=%d linked=%d skipped_no_zip=%d adopted_skatetrax_uuid=%d) "+
		"phase2(linked=%d primary_not_promoted=%d parse_failed=%d) "+
		"phase3(linked=%d no_match=%d) total_locations=%d\n",
		stats.Phase1NewLocations, stats.Phase1LinkedExisting, stats.Phase1SkippedNoZip, stats.Phase1AdoptedSkatetraxUUID,
		stats.Phase2Linked, stats.Phase2PrimaryNotPromoted, stats.Phase2ParseFailed,
		stats.Phase3Linked, stats.Phase3NoMatch, stats.TotalLocations)
}
