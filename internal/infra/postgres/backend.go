package postgres

import (
	"context"
	"log/slog"

	"restaurant-pos/internal/infra"
	"restaurant-pos/internal/pkg/clock"
	"restaurant-pos/internal/pkg/jwt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Backend serves the hosted store from a Postgres database.
type Backend struct {
	*Tables
	*Identity
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewBackend(pool *pgxpool.Pool, jwtService *jwt.Service, clk clock.Clock, logger *slog.Logger) *Backend {
	return &Backend{
		Tables:   NewTables(pool, logger),
		Identity: NewIdentity(pool, jwtService, clk, logger),
		pool:     pool,
		logger:   logger,
	}
}

func (b *Backend) Ping(ctx context.Context) error {
	if err := b.pool.Ping(ctx); err != nil {
		return infra.NewBackendErr(infra.KindUnavailable, "ping", err)
	}
	return nil
}
