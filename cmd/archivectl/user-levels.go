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

// userLevelsCmd represents the user levels command
var userLevelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the security levels",
	Long: `List the security levels users can be granted.

Example:
  archivectl user levels`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := listLevels(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list levels: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	userCmd.AddCommand(userLevelsCmd)
}

func listLevels() error {
	return withDatabase(func(ctx context.Context, _ *config.Config, conn *sql.DB) error {
		levels, err := oracle.NewUsersStore(conn).Levels(ctx)
		if err != nil {
			return err
		}
		for _, level := range levels {
			name := ""
			if level.Name != nil {
				name = *level.Name
			}
			fmt.Printf("%d\t%s\n", level.SystemID, name)
		}
		return nil
	})
}
