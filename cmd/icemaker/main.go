// Command icemaker runs the rink-directory pipeline: per-source
// scraping, normalization, deduplication, geocoding, promotion, and the
// Skatetrax peer sync — the CLI surface for
// original_source/pipeline/run_pipeline.py.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "github.com/lib/pq"

	"github.com/Skatetrax/ice-maker/internal/config"
	"github.com/Skatetrax/ice-maker/internal/dedup"
	"github.com/Skatetrax/ice-maker/internal/geocode"
	"github.com/Skatetrax/ice-maker/internal/logging"
	"github.com/Skatetrax/ice-maker/internal/metrics"
	"github.com/Skatetrax/ice-maker/internal/promote"
	"github.com/Skatetrax/ice-maker/internal/runner"
	"github.com/Skatetrax/ice-maker/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "icemaker",
	Short: "Rink-directory scrape/geocode/promote pipeline",
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app bundles everything a subcommand needs, built once per invocation
// from the environment — the Go equivalent of run_pipeline.py importing
// config at module load time.
type app struct {
	cfg      config.Config
	log      *zap.Logger
	store    *store.Store
	geocoder *geocode.Client
	metrics  *metrics.Registry
}

func newApp(ctx context.Context) (*app, func(), error) {
	cfg := config.MustLoad()

	log, err := logging.New(cfg.Env)
	if err != nil {
		return nil, nil, err
	}

	st, err := store.New(ctx, cfg.IcemakerDBURL, log)
	if err != nil {
		return nil, nil, err
	}

	gc := geocode.New(cfg.NominatimURL, cfg.NominatimRateLimit)
	reg := metrics.New()

	cleanup := func() { st.Close() }
	return &app{cfg: cfg, log: log, store: st, geocoder: gc, metrics: reg}, cleanup, nil
}

func (a *app) thresholds() dedup.Thresholds {
	return dedup.Thresholds{
		FuzzyNameThreshold:         a.cfg.FuzzyNameThreshold,
		FuzzyNameThresholdNoStreet: a.cfg.FuzzyNameThresholdNoStreet,
		GeoProximityMiles:          a.cfg.GeoProximityMiles,
	}
}

func (a *app) newRunner() *runner.Runner {
	return &runner.Runner{
		Store:         a.store,
		Geocoder:      a.geocoder,
		Thresholds:    a.thresholds(),
		ConfidenceMin: a.cfg.GeocodeConfidenceMin,
		Log:           a.log,
	}
}

// peerLookup resolves the promoter's Skatetrax peer-matching strategy:
// the HTTP API whenever cfg.SkatetraxAPIURL is non-empty, otherwise a
// direct peer-DB connection when SKATETRAX_DB_URL is set, otherwise no
// peer. config.Load gives SkatetraxAPIURL a default, so a Config loaded
// from the environment always selects the HTTP API.
func (a *app) peerLookup() (promote.PeerLookup, func(), error) {
	if a.cfg.SkatetraxAPIURL != "" {
		return &promote.HTTPPeer{BaseURL: a.cfg.SkatetraxAPIURL}, func() {}, nil
	}
	if a.cfg.SkatetraxDBURL != "" {
		db, err := sqlx.Connect("postgres", a.cfg.SkatetraxDBURL)
		if err != nil {
			return nil, nil, err
		}
		return &promote.DBPeer{DB: db}, func() { db.Close() }, nil
	}
	return noopPeer{}, func() {}, nil
}

// noopPeer is used when no Skatetrax peer is configured: promotion
// always mints a fresh UUID rather than adopting a peer rink_id.
type noopPeer struct{}

func (noopPeer) FindMatch(ctx context.Context, name, city, state string) (string, bool, error) {
	return "", false, nil
}
