package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rta-apps/pta-archiving-backend/pkg/config"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/store/oracle"
)

// dbPingCmd represents the db ping command
var dbPingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check the Oracle connection",
	Long: `Check that the configured Oracle database is reachable and answers
a probe query.

Example:
  archivectl db ping`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := pingDatabase(); err != nil {
			fmt.Fprintf(os.Stderr, "Database ping failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Database connection OK")
	},
}

func init() {
	dbCmd.AddCommand(dbPingCmd)
}

func pingDatabase() error {
	return withDatabase(func(ctx context.Context, _ *config.Config, conn *sql.DB) error {
		return oracle.NewHealthStore(conn).Ping(ctx)
	})
}
