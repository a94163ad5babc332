package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Skatetrax/ice-maker/internal/config"
	"github.com/Skatetrax/ice-maker/internal/store"
)

var exportCSVCmd = &cobra.Command{
	Use:   "export-csv PATH",
	Short: "Export the location directory to a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExportCSV,
}

func init() {
	rootCmd.AddCommand(exportCSVCmd)
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	cfg := config.MustLoad()

	rep, err := store.NewReporter(cfg.IcemakerDBURL)
	if err != nil {
		return err
	}
	defer rep.Close()

	rows, err := rep.ExportLocations()
	if err != nil {
		return err
	}

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"rink_id", "rink_name", "rink_address", "rink_city", "rink_state",
		"rink_zip", "rink_status", "data_source", "source_count"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.RinkID, r.RinkName, r.RinkAddress, r.RinkCity, r.RinkState,
			r.RinkZip, r.RinkStatus, r.DataSource, strconv.Itoa(r.SourceCount)}); err != nil {
			return err
		}
	}

	fmt.Printf("export-csv: wrote %d rows to %s\n", len(rows), args[0])
	return nil
}
