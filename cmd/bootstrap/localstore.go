package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"restaurant-pos/internal/infra/localstore"
	"restaurant-pos/internal/pkg/config"
	"restaurant-pos/internal/usecase"

	"go.uber.org/fx"
)

var LocalStoreModule = fx.Module("localstore",
	fx.Provide(
		NewLocalStore,
	),
)

func NewLocalStore(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (usecase.LocalStore, error) {
	switch cfg.Offline.Driver {
	case config.OfflineDriverMemory:
		logger.Warn("オフラインデータをメモリに保持します（再起動で失われます）")
		return localstore.NewMemoryStore(), nil
	case config.OfflineDriverFile:
		return localstore.NewFileStore(cfg.Offline.Dir)
	case config.OfflineDriverRedis:
		client := localstore.NewRedisClient(cfg.Offline.RedisAddr, cfg.Offline.RedisPassword, cfg.Offline.RedisDB)
		store := localstore.NewRedisStore(client, cfg.Offline.KeyPrefix)
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return store.Ping(ctx)
			},
			OnStop: func(_ context.Context) error {
				return client.Close()
			},
		})
		return store, nil
	default:
		return nil, fmt.Errorf("unknown offline driver %q", cfg.Offline.Driver)
	}
}
