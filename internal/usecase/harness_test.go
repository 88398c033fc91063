//go:build unit

package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"restaurant-pos/internal/domain/user"
	"restaurant-pos/internal/infra/localstore"
	"restaurant-pos/internal/infra/memory"
	"restaurant-pos/internal/infra/wire"
	"restaurant-pos/internal/offline"
	"restaurant-pos/internal/pkg/clock"
	"restaurant-pos/internal/pkg/notify"
	"restaurant-pos/internal/usecase"
	"restaurant-pos/tests/common/builder"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingBackend records every table call so tests can assert on backend traffic. hook runs
// before the call is delegated and can fail it.
type countingBackend struct {
	*memory.Backend
	mu    sync.Mutex
	calls []string
	hook  func(op string) error
}

func (c *countingBackend) record(op string) error {
	c.mu.Lock()
	c.calls = append(c.calls, op)
	hook := c.hook
	c.mu.Unlock()
	if hook != nil {
		return hook(op)
	}
	return nil
}

func (c *countingBackend) Select(ctx context.Context, table string, q wire.Query) ([]wire.Record, error) {
	if err := c.record("select " + table); err != nil {
		return nil, err
	}
	return c.Backend.Select(ctx, table, q)
}

func (c *countingBackend) Insert(ctx context.Context, table string, rec wire.Record) (wire.Record, error) {
	if err := c.record("insert " + table); err != nil {
		return nil, err
	}
	return c.Backend.Insert(ctx, table, rec)
}

func (c *countingBackend) Update(ctx context.Context, table, id string, patch wire.Record) (wire.Record, error) {
	if err := c.record("update " + table); err != nil {
		return nil, err
	}
	return c.Backend.Update(ctx, table, id, patch)
}

func (c *countingBackend) Delete(ctx context.Context, table, id string) error {
	if err := c.record("delete " + table); err != nil {
		return err
	}
	return c.Backend.Delete(ctx, table, id)
}

func (c *countingBackend) count(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, call := range c.calls {
		if call == op {
			n++
		}
	}
	return n
}

func (c *countingBackend) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

func (c *countingBackend) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = nil
}

func (c *countingBackend) setHook(fn func(op string) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hook = fn
}

type harness struct {
	clock     *clock.MockClock
	backend   *countingBackend
	local     *localstore.MemoryStore
	queue     *offline.Queue
	notes     *notify.Center
	auth      *usecase.AuthStore
	locations *usecase.LocationStore
	staff     *usecase.StaffStore
	pos       *usecase.POSStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWith(t, localstore.NewMemoryStore())
}

func newHarnessWith(t *testing.T, local usecase.LocalStore) *harness {
	t.Helper()
	logger := discardLogger()
	clk := clock.NewMockClock(testNow)
	backend := &countingBackend{Backend: memory.NewBackend(clk, logger, 12*time.Hour)}
	notes := notify.NewCenter(logger, clk, 0)
	queue := offline.NewQueue(local, clk, logger, nil)

	auth := usecase.NewAuthStore(backend, backend, notes, clk, logger)
	locations := usecase.NewLocationStore(backend, auth, notes, logger)
	h := &harness{
		clock:     clk,
		backend:   backend,
		queue:     queue,
		notes:     notes,
		auth:      auth,
		locations: locations,
		staff:     usecase.NewStaffStore(backend, backend, auth, notes, logger),
		pos:       usecase.NewPOSStore(backend, auth, locations, local, queue, notes, clk, logger, nil),
	}
	if mem, ok := local.(*localstore.MemoryStore); ok {
		h.local = mem
	}
	return h
}

// signIn seeds u, signs in as them and clears the recorded backend traffic.
func (h *harness) signIn(t *testing.T, u *builder.UserBuilder) user.User {
	t.Helper()
	u.Seed(t, h.backend.Backend)
	signed, err := h.auth.SignIn(context.Background(), u.Email, u.Password)
	require.NoError(t, err)
	h.auth.WaitBackground()
	h.backend.reset()
	return signed
}

func (h *harness) seed(t *testing.T, table string, recs ...wire.Record) {
	t.Helper()
	require.NoError(t, h.backend.Seed(table, recs...))
}
