package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rta-apps/pta-archiving-backend/pkg/config"
	"github.com/rta-apps/pta-archiving-backend/pkg/db"
	"github.com/rta-apps/pta-archiving-backend/pkg/dms"
	"github.com/rta-apps/pta-archiving-backend/pkg/server"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/endpoints"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/middleware"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/store/oracle"
)

const shutdownTimeout = 5 * time.Second

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return config.DefaultBindAddress
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return config.DefaultPort
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the archiving backend server",
	Long: `Run the archiving backend API server.

The server requires the Oracle connection (DB_HOST, DB_SERVICE_NAME,
DB_USERNAME, DB_PASSWORD), the DMS connection (WSDL_URL, DMS_USER,
DMS_PASSWORD) and the session key (SECRET_KEY). Values may also come
from the config file; see "archivectl configuration show".`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind-address") {
			cfg.BindAddress, _ = cmd.Flags().GetString("bind-address")
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if err := runServer(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", defaultPortInt(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
}

func runServer(cfg *config.Config) error {
	logger := newLogger(cfg.LogLevel)

	conn, err := db.Connect(context.Background(), cfg.Database)
	if err != nil {
		return err
	}
	defer conn.Close()

	dmsClient := dms.NewClient(cfg.DMS, logger)
	sessions := middleware.NewSessionAuthenticator(cfg.Session)

	s := server.NewServer(
		oracle.NewUsersStore(conn),
		oracle.NewEmployeesStore(conn, dmsClient),
		oracle.NewHREmployeesStore(conn),
		oracle.NewLookupsStore(conn),
		oracle.NewHealthStore(conn),
		dmsClient,
		sessions,
		cfg,
		logger,
	)
	endpoints.RegisterAll(s)

	errs := make(chan error, 1)
	go func() { errs <- s.Start() }()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errs:
		return err
	case sig := <-sigs:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(ctx)
	}
}
