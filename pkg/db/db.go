package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/sijms/go-ora/v2"

	"github.com/rta-apps/pta-archiving-backend/pkg/config"
)

const (
	pingTimeout = 5 * time.Second

	maxOpenConns    = 10
	maxIdleConns    = 2
	connMaxLifetime = 30 * time.Minute
)

// URL builds an Oracle connection URL from the database settings.
// Credentials are URL-escaped so passwords with reserved characters work.
func URL(cfg config.Database) string {
	u := url.URL{
		Scheme: "oracle",
		User:   url.UserPassword(cfg.Username, cfg.Password),
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   cfg.ServiceName,
	}
	return u.String()
}

// Connect establishes an Oracle connection pool and verifies it with a ping.
func Connect(ctx context.Context, cfg config.Database) (*sql.DB, error) {
	conn, err := sql.Open("oracle", URL(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetMaxIdleConns(maxIdleConns)
	conn.SetConnMaxLifetime(connMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return conn, nil
}
