package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rta-apps/pta-archiving-backend/pkg/config"
	"github.com/rta-apps/pta-archiving-backend/pkg/dms"
)

const dmsPingTimeout = 30 * time.Second

// dmsPingCmd represents the dms ping command
var dmsPingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check the DMS connection",
	Long: `Log in to the DMS with the configured service account and report
whether a session ticket came back.

Example:
  archivectl dms ping`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := pingDMS(); err != nil {
			fmt.Fprintf(os.Stderr, "DMS ping failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	dmsCmd.AddCommand(dmsPingCmd)
}

func pingDMS() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	client := dms.NewClient(cfg.DMS, newLogger(cfg.LogLevel))

	ctx, cancel := context.WithTimeout(context.Background(), dmsPingTimeout)
	defer cancel()

	dst, err := client.SystemLogin(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("DMS login OK, ticket %s\n", maskTicket(dst))
	return nil
}

// maskTicket keeps session tickets out of terminals and shell history.
func maskTicket(dst string) string {
	if len(dst) <= 8 {
		return "********"
	}
	return dst[:4] + "..." + dst[len(dst)-4:]
}
