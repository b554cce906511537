package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rta-apps/pta-archiving-backend/pkg/config"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/store"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/store/oracle"
)

// userShowCmd represents the user show command
var userShowCmd = &cobra.Command{
	Use:   "show <username>",
	Short: "Show a user's security level",
	Long: `Show the security level assigned to a user.

Example:
  archivectl user show jsmith`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		username := args[0]
		if err := showUser(username); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to show user: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	userCmd.AddCommand(userShowCmd)
}

func showUser(username string) error {
	return withDatabase(func(ctx context.Context, _ *config.Config, conn *sql.DB) error {
		level, err := oracle.NewUsersStore(conn).SecurityLevel(ctx, username)
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			return fmt.Errorf("no user named %q", username)
		case errors.Is(err, store.ErrNoSecurityLevel):
			fmt.Printf("%s has no security level; the application will refuse the login\n", username)
			return nil
		case err != nil:
			return err
		}

		fmt.Printf("%s: %s\n", username, level)
		return nil
	})
}
