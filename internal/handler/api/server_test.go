//go:build unit

package api_test

import (
	"io"
	"log/slog"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"
	"time"

	"restaurant-pos/internal/handler"
	"restaurant-pos/internal/handler/api"
	"restaurant-pos/internal/handler/middleware"
	"restaurant-pos/internal/infra/localstore"
	"restaurant-pos/internal/infra/memory"
	"restaurant-pos/internal/infra/metrics"
	"restaurant-pos/internal/infra/wire"
	"restaurant-pos/internal/offline"
	"restaurant-pos/internal/pkg/clock"
	"restaurant-pos/internal/pkg/config"
	"restaurant-pos/internal/pkg/notify"
	"restaurant-pos/internal/usecase"
	"restaurant-pos/tests/common/authtest"
	"restaurant-pos/tests/common/builder"
	"restaurant-pos/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

// server is the full router over the in-memory backend and local store.
type server struct {
	router  *gin.Engine
	clock   *clock.MockClock
	backend *memory.Backend
	local   *localstore.MemoryStore
	pos     *usecase.POSStore
	metrics *metrics.Metrics
	token   string
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.NewTestConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewMockClock(testNow)
	backend := memory.NewBackend(clk, logger, 12*time.Hour)
	local := localstore.NewMemoryStore()
	m := metrics.New()
	notes := notify.NewCenter(logger, clk, 0)
	queue := offline.NewQueue(local, clk, logger, m)

	authStore := usecase.NewAuthStore(backend, backend, notes, clk, logger)
	locations := usecase.NewLocationStore(backend, authStore, notes, logger)
	staff := usecase.NewStaffStore(backend, backend, authStore, notes, logger)
	pos := usecase.NewPOSStore(backend, authStore, locations, local, queue, notes, clk, logger, m)
	monitor := usecase.NewConnectivityMonitor(backend, pos, time.Second, time.Second, logger, m)

	engine := gin.New()
	handler.NewRouter(engine, cfg, middleware.NewLogger(cfg.Log), handler.Handlers{
		Auth:     api.NewAuthHandler(authStore, cfg, clk),
		Location: api.NewLocationHandler(locations),
		Staff:    api.NewStaffHandler(staff),
		Menu:     api.NewMenuHandler(pos),
		Order:    api.NewOrderHandler(pos),
		Offline:  api.NewOfflineHandler(pos, monitor, notes),
	}, middleware.NewAuthMiddleware(usecase.NewTokenValidator(authStore, clk)), m)

	return &server{
		router:  engine,
		clock:   clk,
		backend: backend,
		local:   local,
		pos:     pos,
		metrics: m,
	}
}

// open seeds a location for ub's restaurant, signs in through the API and loads the locations
// so the working location is selected.
func (s *server) open(t *testing.T, ub *builder.UserBuilder) uuid.UUID {
	t.Helper()
	lb := builder.NewLocationBuilder(*ub.RestaurantID)
	require.NoError(t, s.backend.Seed(wire.TableLocations, lb.BuildRecord()))
	ub.Seed(t, s.backend)
	s.token = authtest.LoginUser(t, s.router, ub.Email, ub.Password)

	w := s.do(t, http.MethodGet, "/api/locations", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return lb.ID
}

func (s *server) do(t *testing.T, method, path string, body any) *nethttptest.ResponseRecorder {
	t.Helper()
	return httptest.PerformRequest(t, s.router, method, path, body, s.token)
}
