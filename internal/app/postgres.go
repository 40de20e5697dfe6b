package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver for database/sql

	"github.com/guttosm/marketpulse/config"
)

const pingTimeout = 5 * time.Second

// sqlOpener is an indirection for unit testing; defaults to sql.Open.
var sqlOpener = sql.Open

// InitPostgres opens the watchlist database and verifies it answers a ping.
//
// Example usage:
//
//	db, err := app.InitPostgres(ctx, cfg.Postgres)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
func InitPostgres(ctx context.Context, cfg config.PostgresConfig) (*sql.DB, error) {
	dsn := cfg.URL
	if dsn == "" {
		dsn = cfg.DSN()
	}

	db, err := sqlOpener("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	// The watchlist is small; a handful of connections covers the API and
	// the refresh job together.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}

// postgresOpener is an indirection used by NewServices; overridden in tests
// to avoid real connections.
var postgresOpener = InitPostgres
