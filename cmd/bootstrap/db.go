package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"restaurant-pos/internal/infra/db"
	"restaurant-pos/internal/infra/memory"
	"restaurant-pos/internal/infra/postgres"
	"restaurant-pos/internal/pkg/clock"
	"restaurant-pos/internal/pkg/config"
	"restaurant-pos/internal/pkg/jwt"
	"restaurant-pos/internal/usecase"

	"go.uber.org/fx"
)

var BackendModule = fx.Module("backend",
	fx.Provide(
		NewBackend,
		func(b usecase.Backend) usecase.Identity { return b },
		func(b usecase.Backend) usecase.Tables { return b },
		func(b usecase.Backend) usecase.Pinger { return b },
	),
)

// NewBackend opens the hosted store. The postgres pool is lazy so the terminal starts even
// when the database is unreachable; the connectivity monitor takes it from there.
func NewBackend(lc fx.Lifecycle, cfg config.Config, jwtService *jwt.Service, clk clock.Clock, logger *slog.Logger) (usecase.Backend, error) {
	switch cfg.Backend.Driver {
	case config.BackendDriverMemory:
		logger.Warn("インメモリバックエンドを使用します（データは永続化されません）")
		return memory.NewBackend(clk, logger, jwtService.TokenDuration()), nil
	case config.BackendDriverPostgres:
		pool, cleanup, err := db.Open(cfg.DB)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				if cleanup != nil {
					cleanup()
				}
				return nil
			},
		})
		return postgres.NewBackend(pool, jwtService, clk, logger), nil
	default:
		return nil, fmt.Errorf("unknown backend driver %q", cfg.Backend.Driver)
	}
}
