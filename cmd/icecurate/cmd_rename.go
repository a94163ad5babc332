package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <id|name> <new-name>",
	Short: "Rename a location, keeping its old name as a searchable alias",
	Args:  cobra.ExactArgs(2),
	RunE:  runRename,
}

func init() {
	rootCmd.AddCommand(renameCmd)
}

func runRename(cmd *cobra.Command, args []string) error {
	c, cleanup, err := newCurator(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	loc, err := c.Rename(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("renamed %s to %q\n", loc.RinkID, loc.Name)
	return nil
}
