package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/rta-apps/pta-archiving-backend/pkg/config"
	"github.com/rta-apps/pta-archiving-backend/pkg/dms"
	"github.com/rta-apps/pta-archiving-backend/pkg/importer"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/store/oracle"
)

// importWatchCmd represents the import watch command
var importWatchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Watch a trigger file and import on change",
	Long: `Watch a trigger file and run an import when it changes.

To trigger an import, replace the contents of the watched file with the
path to the spreadsheet. The path must be visible to the process running
"archivectl import watch".

Example:
  archivectl import watch /run/pta-archive/import`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := watchImports(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch imports: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	importCmd.AddCommand(importWatchCmd)
}

func watchImports(filename string) error {
	return withDatabase(func(ctx context.Context, cfg *config.Config, conn *sql.DB) error {
		logger := newLogger(cfg.LogLevel)
		employees := oracle.NewEmployeesStore(conn, dms.NewClient(cfg.DMS, logger))
		loader := importer.NewLoader(employees, logger)

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		defer func() { _ = watcher.Close() }()

		if err := watcher.Add(filename); err != nil {
			return fmt.Errorf("failed to watch file %s: %w", filename, err)
		}

		fmt.Printf("Watching %s for import triggers\n", filename)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
					content, err := os.ReadFile(filename)
					if err != nil {
						fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
						continue
					}

					path := strings.TrimSpace(string(content))
					if path == "" {
						continue
					}

					fmt.Printf("[%s] Importing %s...\n", time.Now().Format(time.RFC3339), path)
					result, err := loader.LoadFromFile(ctx, path)
					if err != nil {
						fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
						continue
					}
					if result.Failed > 0 {
						fmt.Fprintf(os.Stderr, "Import rolled back: %d failed\n", result.Failed)
						for _, e := range result.Errors {
							fmt.Fprintf(os.Stderr, "  - %s\n", e)
						}
						continue
					}
					fmt.Printf("Added %d employees from %s\n", result.Added, path)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
			case <-sigChan:
				fmt.Println("\nShutting down...")
				return nil
			}
		}
	})
}
