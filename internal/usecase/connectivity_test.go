//go:build unit

package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"restaurant-pos/internal/domain/payment"
	"restaurant-pos/internal/usecase"
	"restaurant-pos/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type onlineRecorder struct {
	mu   sync.Mutex
	seen []bool
}

func (r *onlineRecorder) SetOnline(online bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, online)
}

func (r *onlineRecorder) values() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.seen...)
}

func newMonitor(h *harness, rec usecase.ConnectivityRecorder) *usecase.ConnectivityMonitor {
	return usecase.NewConnectivityMonitor(h.backend, h.pos, 10*time.Millisecond, time.Second, discardLogger(), rec)
}

func TestConnectivityMonitor_Probe(t *testing.T) {
	ctx := context.Background()

	t.Run("到達できなければオフラインにする", func(t *testing.T) {
		h := newHarness(t)
		rec := &onlineRecorder{}
		m := newMonitor(h, rec)
		h.backend.SetUnavailable(true)

		assert.False(t, m.Probe(ctx))
		assert.True(t, h.pos.IsOffline())
		assert.Equal(t, []bool{false}, rec.values())
	})

	t.Run("復帰時にキューがあれば同期する", func(t *testing.T) {
		h := newHarness(t)
		locID := openPOS(t, h, builder.NewUserBuilder())
		orderID := openOrder(t, h, locID)
		m := newMonitor(h, nil)

		h.backend.SetUnavailable(true)
		require.False(t, m.Probe(ctx))
		_, err := h.pos.ProcessPayment(ctx, payment.Request{OrderID: orderID, Amount: 9.9, Method: payment.MethodCash})
		require.NoError(t, err)
		require.Equal(t, 1, h.queue.Len())

		h.backend.SetUnavailable(false)
		assert.True(t, m.Probe(ctx))

		assert.False(t, h.pos.IsOffline())
		assert.Equal(t, 0, h.queue.Len())
		assert.Equal(t, 1, h.backend.count("insert order_payments"))
		require.NotNil(t, h.pos.Snapshot().LastSync)
	})

	t.Run("オンラインのままなら同期しない", func(t *testing.T) {
		h := newHarness(t)
		openPOS(t, h, builder.NewUserBuilder())
		m := newMonitor(h, nil)

		assert.True(t, m.Probe(ctx))
		assert.Nil(t, h.pos.Snapshot().LastSync)
		assert.Equal(t, 0, h.backend.total())
	})
}

func TestConnectivityMonitor_RunStopsOnCancel(t *testing.T) {
	h := newHarness(t)
	rec := &onlineRecorder{}
	m := newMonitor(h, rec)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return len(rec.values()) >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}
}
