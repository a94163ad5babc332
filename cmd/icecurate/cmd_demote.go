package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var demoteCmd = &cobra.Command{
	Use:   "demote <id|name> <status>",
	Short: "Change a location's status (active, seasonal, closed_permanently, disabled)",
	Args:  cobra.ExactArgs(2),
	RunE:  runDemote,
}

func init() {
	rootCmd.AddCommand(demoteCmd)
}

func runDemote(cmd *cobra.Command, args []string) error {
	c, cleanup, err := newCurator(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	loc, err := c.Demote(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("demoted %s (%s) to status=%s\n", loc.Name, loc.RinkID, loc.Status)
	return nil
}
