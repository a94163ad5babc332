package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <primary> <duplicate> [more duplicates...]",
	Short: "Fold one or more duplicate locations into a surviving primary",
	Long: `merge moves every duplicate's source links onto the primary (widening
the observation window on conflicts), records each duplicate's name as
an alias of the primary when the names differ, and marks each duplicate
"merged" — duplicates
are never deleted, so old rink_ids referenced elsewhere keep resolving.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	c, cleanup, err := newCurator(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := c.Merge(cmd.Context(), args[0], args[1:]...)
	if err != nil {
		return err
	}
	fmt.Printf("merged %v into %s: sources_moved=%d aliases_created=%d\n",
		result.DuplicateIDs, result.PrimaryID, result.SourcesMoved, result.AliasesCreated)
	return nil
}
