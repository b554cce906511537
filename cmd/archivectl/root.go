package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "archivectl",
	Short: "Control tool for the HR archiving backend",
	Long:  `archivectl runs the HR archiving API server and operates its database, DMS and import tooling.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	// The deployment keeps its settings in a .env next to the binary.
	_ = godotenv.Load()
	Execute()
}
