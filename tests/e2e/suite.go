//go:build e2e

package e2e

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"restaurant-pos/cmd/bootstrap"
	"restaurant-pos/cmd/bootstrap/components"
	"restaurant-pos/internal/pkg/config"
	"restaurant-pos/tests/common/dbtest"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

const (
	EventuallyTimeout = 3 * time.Second
	EventuallyTick    = 50 * time.Millisecond
)

// SharedSuite runs the whole fx graph against the Postgres backend and the Redis offline store.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	pg := postgresContainer.start(t)
	rd := redisContainer.start(t)

	pool, dbCfg := prepareDatabase(t, pg)
	cfg := config.NewTestConfig()
	cfg.Backend.Driver = config.BackendDriverPostgres
	cfg.DB = dbCfg
	cfg.Offline = prepareOfflineStore(t, rd)

	s.DB = pool
	s.Config = cfg
	s.Router = startApp(t, cfg)
}

// SetupSubTest truncates every table so subtests do not see each other's rows.
func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "Failed to reset database state")
}

func startApp(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()

	var router *gin.Engine
	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		bootstrap.BackendModule,
		bootstrap.LocalStoreModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "fxアプリケーションの起動に失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("fxアプリケーションの停止に失敗しました", "error", err.Error())
		}
	})
	return router
}
