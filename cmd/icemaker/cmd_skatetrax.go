package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/Skatetrax/ice-maker/internal/peerpush"
)

var pushDryRun bool

var syncIceTimeCmd = &cobra.Command{
	Use:   "sync-ice-time",
	Short: "Confirm directory locations against Skatetrax's ice_time table",
	Long: `sync-ice-time reads distinct rink_ids out of the Skatetrax peer
database's ice_time table (proof a skater was actually present) and
records each as a location_sources row for the synthetic "skatetrax"
source. Rinks in ice_time with no matching directory entry are counted
but not created — this is link-only.`,
	RunE: runSyncIceTime,
}

var pushToSkatetraxCmd = &cobra.Command{
	Use:   "push-to-skatetrax",
	Short: "Push active directory locations into the Skatetrax peer database",
	Long: `push-to-skatetrax pushes every active, zip-having location into
Skatetrax: existing rink_ids get their address fields refreshed but keep
their curated name/phone/url/timezone; new rink_ids are inserted whole.
Name mismatches on existing rows are recorded as local aliases, never
overwritten on the peer side.`,
	RunE: runPushToSkatetrax,
}

func init() {
	pushToSkatetraxCmd.Flags().BoolVar(&pushDryRun, "dry-run", false, "report what would change without writing")
	rootCmd.AddCommand(syncIceTimeCmd, pushToSkatetraxCmd)
}

func newPusher(ctx context.Context, a *app) (*peerpush.Pusher, func(), error) {
	if a.cfg.SkatetraxDBURL == "" {
		return nil, nil, fmt.Errorf("SKATETRAX_DB_URL is not configured")
	}
	db, err := sqlx.Connect("postgres", a.cfg.SkatetraxDBURL)
	if err != nil {
		return nil, nil, err
	}
	return &peerpush.Pusher{Store: a.store, PeerDB: db, Log: a.log}, func() { db.Close() }, nil
}

func runSyncIceTime(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	p, peerCleanup, err := newPusher(cmd.Context(), a)
	if err != nil {
		return err
	}
	defer peerCleanup()

	stats, err := p.SyncIceTime(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("sync-ice-time: total_in_ice_time=%d confirmed=%d missing_from_directory=%d\n",
		stats.TotalRinksInIceTime, stats.Confirmed, stats.MissingFromDirectory)
	return nil
}

func runPushToSkatetrax(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	p, peerCleanup, err := newPusher(cmd.Context(), a)
	if err != nil {
		return err
	}
	defer peerCleanup()

	stats, err := p.Push(cmd.Context(), pushDryRun)
	if err != nil {
		return err
	}
	fmt.Printf("push-to-skatetrax: active=%d already_in_skatetrax=%d updated=%d inserted=%d aliases=%d skipped_no_zip=%d errors=%d\n",
		stats.IcemakerActive, stats.AlreadyInSkatetrax, stats.Updated, stats.Inserted,
		stats.AliasesCreated, stats.SkippedNoZip, stats.Errors)
	return nil
}
