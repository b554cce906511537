package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rta-apps/pta-archiving-backend/pkg/config"
	"github.com/rta-apps/pta-archiving-backend/pkg/dms"
	"github.com/rta-apps/pta-archiving-backend/pkg/importer"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/store/oracle"
)

// importRunCmd represents the import run command
var importRunCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Archive every row of a spreadsheet",
	Long: `Parse a .xlsx or .csv spreadsheet and archive every row. Row
failures roll the whole import back and are reported per row.

Example:
  archivectl import run /data/employees.xlsx`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runImport(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	importCmd.AddCommand(importRunCmd)
}

func runImport(path string) error {
	return withDatabase(func(ctx context.Context, cfg *config.Config, conn *sql.DB) error {
		logger := newLogger(cfg.LogLevel)
		employees := oracle.NewEmployeesStore(conn, dms.NewClient(cfg.DMS, logger))

		result, err := importer.NewLoader(employees, logger).LoadFromFile(ctx, path)
		if errors.Is(err, importer.ErrNoRows) {
			return fmt.Errorf("%s has no data rows", path)
		}
		if err != nil {
			return err
		}

		if result.Failed > 0 {
			fmt.Printf("Import rolled back: %d rows would have been added, %d failed\n", result.Added, result.Failed)
			for _, e := range result.Errors {
				fmt.Printf("  - %s\n", e)
			}
			return fmt.Errorf("%d rows failed", result.Failed)
		}

		fmt.Printf("Added %d employees from %s\n", result.Added, path)
		return nil
	})
}
