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

// userGrantCmd represents the user grant command
var userGrantCmd = &cobra.Command{
	Use:   "grant <username> <level>",
	Short: "Grant a user a security level",
	Long: `Assign a named security level to a user, replacing any existing
assignment. Use "archivectl user levels" to list valid level names.

Example:
  archivectl user grant jsmith Editor`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		username, level := args[0], args[1]
		if err := grantUser(username, level); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to grant level: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Granted %s to %s\n", level, username)
	},
}

func init() {
	userCmd.AddCommand(userGrantCmd)
}

func grantUser(username, level string) error {
	return withDatabase(func(ctx context.Context, _ *config.Config, conn *sql.DB) error {
		err := oracle.NewUsersStore(conn).GrantSecurityLevel(ctx, username, level)
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			return fmt.Errorf("no user named %q", username)
		case errors.Is(err, store.ErrLevelNotFound):
			return fmt.Errorf("no security level named %q, run \"archivectl user levels\"", level)
		}
		return err
	})
}
