package db

import (
	"context"
	"fmt"
	"time"

	"restaurant-pos/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

const connectTimeout = 10 * time.Second

// Open builds a pool without touching the network, so a terminal can start while the
// backend is unreachable. Connections are established on first use.
func Open(cfg config.DBConfig) (*pgxpool.Pool, func(), error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.BuildDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MinConns = 0
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute
	poolCfg.ConnConfig.ConnectTimeout = connectTimeout

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	return pool, pool.Close, nil
}

// Connect opens a pool and verifies the database answers.
func Connect(cfg config.DBConfig) (*pgxpool.Pool, func(), error) {
	pool, cleanup, err := Open(cfg)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, cleanup, nil
}
