package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk archive employees from a spreadsheet",
	Long:  `Bulk archive employees from .xlsx or .csv spreadsheets, outside the HTTP API.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'import' requires a subcommand (run, watch)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
