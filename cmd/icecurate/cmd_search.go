package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search locations by name substring",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	c, cleanup, err := newCurator(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	locs, err := c.Search(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if len(locs) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for _, l := range locs {
		fmt.Printf("%s  %-40s  %s, %s  %s\n", l.RinkID, l.Name, l.City, l.State, l.Status)
	}
	return nil
}
