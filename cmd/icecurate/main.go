// Command icecurate runs hand-curation operations against the
// promoted directory: demote, merge, rename, and search — the CLI
// surface for original_source/pipeline/demoter.py.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Skatetrax/ice-maker/internal/config"
	"github.com/Skatetrax/ice-maker/internal/curate"
	"github.com/Skatetrax/ice-maker/internal/logging"
	"github.com/Skatetrax/ice-maker/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "icecurate",
	Short: "Hand-curate the rink directory: demote, merge, rename, search",
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCurator(ctx context.Context) (*curate.Curator, func(), error) {
	cfg := config.MustLoad()

	log, err := logging.New(cfg.Env)
	if err != nil {
		return nil, nil, err
	}

	st, err := store.New(ctx, cfg.IcemakerDBURL, log)
	if err != nil {
		return nil, nil, err
	}

	return &curate.Curator{Store: st, Log: log}, func() { st.Close() }, nil
}
