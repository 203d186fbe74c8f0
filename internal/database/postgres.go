// Package database opens the PostgreSQL connection used by the postgres sink.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	dbconfig "github.com/jonesrussell/fightcrawl/internal/config/database"
)

// DefaultPingTimeout bounds the connectivity check in NewPostgresConnection.
const DefaultPingTimeout = 5 * time.Second

// NewPostgresConnection connects to PostgreSQL, applies the pool settings
// from cfg and verifies the connection with a ping.
func NewPostgresConnection(ctx context.Context, cfg *dbconfig.Config) (*sqlx.DB, error) {
	if cfg == nil {
		return nil, errors.New("database config is required")
	}

	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	Configure(db, cfg)

	pingCtx, cancel := context.WithTimeout(ctx, DefaultPingTimeout)
	defer cancel()

	if pingErr := db.PingContext(pingCtx); pingErr != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", pingErr)
	}

	return db, nil
}

// Configure applies the connection pool settings from cfg.
func Configure(db *sqlx.DB, cfg *dbconfig.Config) {
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
}
