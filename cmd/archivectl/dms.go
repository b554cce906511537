package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// dmsCmd represents the dms command
var dmsCmd = &cobra.Command{
	Use:   "dms",
	Short: "Manage the DMS connection",
	Long:  `Manage the connection to the OpenText document management system.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'dms' requires a subcommand (ping)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(dmsCmd)
}
