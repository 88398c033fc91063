package components

import (
	"context"
	"log/slog"

	"restaurant-pos/internal/infra/metrics"
	"restaurant-pos/internal/offline"
	"restaurant-pos/internal/pkg/clock"
	"restaurant-pos/internal/pkg/config"
	"restaurant-pos/internal/pkg/notify"
	"restaurant-pos/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseStoresModule,
	usecaseValidatorsModule,
	fx.Invoke(restoreOfflineState, startConnectivityMonitor),
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	metrics.New,
	fx.Annotate(
		func(logger *slog.Logger, clk clock.Clock) *notify.Center {
			return notify.NewCenter(logger, clk, notify.DefaultCapacity)
		},
		fx.As(fx.Self()),
		fx.As(new(notify.Notifier)),
	),
	func(local usecase.LocalStore, clk clock.Clock, logger *slog.Logger, m *metrics.Metrics) *offline.Queue {
		return offline.NewQueue(local, clk, logger, m)
	},
)

var usecaseStoresModule = fx.Module("usecase/stores",
	fx.Provide(
		fx.Annotate(
			usecase.NewAuthStore,
			fx.As(fx.Self()),
			fx.As(new(usecase.Session)),
			fx.As(new(usecase.ProfileSession)),
		),
		fx.Annotate(
			usecase.NewLocationStore,
			fx.As(fx.Self()),
			fx.As(new(usecase.LocationSelection)),
		),
		usecase.NewStaffStore,
		func(
			tables usecase.Tables,
			session usecase.Session,
			locations usecase.LocationSelection,
			local usecase.LocalStore,
			queue *offline.Queue,
			notifier notify.Notifier,
			clk clock.Clock,
			logger *slog.Logger,
			m *metrics.Metrics,
		) *usecase.POSStore {
			return usecase.NewPOSStore(tables, session, locations, local, queue, notifier, clk, logger, m)
		},
		func(backend usecase.Pinger, pos *usecase.POSStore, cfg config.Config, logger *slog.Logger, m *metrics.Metrics) *usecase.ConnectivityMonitor {
			return usecase.NewConnectivityMonitor(backend, pos, cfg.Sync.ProbeInterval, cfg.Sync.ProbeTimeout, logger, m)
		},
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

// restoreOfflineState reloads payments captured before the last shutdown. A broken local
// store is reported but does not stop the terminal from taking online payments.
func restoreOfflineState(lc fx.Lifecycle, pos *usecase.POSStore, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := pos.LoadOfflineState(ctx); err != nil {
				logger.Error("オフラインデータの復元に失敗しました", "error", err)
				return nil
			}
			logger.Info("オフラインデータを復元しました", "queue_length", pos.QueueLength())
			return nil
		},
	})
}

func startConnectivityMonitor(lc fx.Lifecycle, cfg config.Config, monitor *usecase.ConnectivityMonitor, logger *slog.Logger) {
	if !cfg.Sync.Enabled {
		logger.Info("接続監視は無効です")
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				monitor.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
