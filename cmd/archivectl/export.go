package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rta-apps/pta-archiving-backend/pkg/config"
	"github.com/rta-apps/pta-archiving-backend/pkg/dms"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/endpoints"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/store"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/store/oracle"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the archive list as CSV",
	Long: `Export the archive list as CSV, with the same columns and filters
as the dashboard export.

Example:
  archivectl export
  archivectl export --filter-type expiring_soon_or_expired --out expiring.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		out, _ := cmd.Flags().GetString("out")
		filter := store.Filter{
			Search:     mustString(cmd, "search"),
			Status:     mustString(cmd, "status"),
			FilterType: mustString(cmd, "filter-type"),
			Page:       1,
			PageSize:   0,
		}

		if err := runExport(out, filter); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("out", "o", "", "Output file (default: stdout)")
	exportCmd.Flags().String("search", "", "Filter by name or employee number")
	exportCmd.Flags().String("status", "", "Filter by status id")
	exportCmd.Flags().String("filter-type", "", "has_warrant, no_warrant or expiring_soon_or_expired")
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func runExport(out string, filter store.Filter) error {
	return withDatabase(func(ctx context.Context, cfg *config.Config, conn *sql.DB) error {
		logger := newLogger(cfg.LogLevel)
		employees := oracle.NewEmployeesStore(conn, dms.NewClient(cfg.DMS, logger))

		rows, _, err := employees.List(ctx, filter)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("no rows matched the filter")
		}

		var w io.Writer = os.Stdout
		if out != "" {
			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer file.Close()
			w = file
		}

		if err := endpoints.WriteArchiveCSV(w, rows); err != nil {
			return err
		}
		if out != "" {
			fmt.Printf("Exported %d rows to %s\n", len(rows), out)
		}
		return nil
	})
}
