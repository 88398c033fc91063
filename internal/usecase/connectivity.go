package usecase

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"restaurant-pos/internal/pkg/errs"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// ConnectivityRecorder is told the result of every probe.
type ConnectivityRecorder interface {
	SetOnline(online bool)
}

// ConnectivityMonitor probes the backend on an interval, keeps the POS offline flag current
// and syncs the offline queue when the backend comes back.
type ConnectivityMonitor struct {
	backend  Pinger
	pos      *POSStore
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
	recorder ConnectivityRecorder
	probing  atomic.Bool
}

func NewConnectivityMonitor(backend Pinger, pos *POSStore, interval, timeout time.Duration, logger *slog.Logger, recorder ConnectivityRecorder) *ConnectivityMonitor {
	return &ConnectivityMonitor{
		backend:  backend,
		pos:      pos,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
		recorder: recorder,
	}
}

func (m *ConnectivityMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	m.logger.Info("connectivity monitor started", slog.Duration("interval", m.interval))

	m.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("connectivity monitor stopped")
			return
		case <-ticker.C:
			m.Probe(ctx)
		}
	}
}

// Probe checks the backend once. Going from offline to online with queued work starts a sync.
// It reports whether the backend was reachable.
func (m *ConnectivityMonitor) Probe(ctx context.Context) bool {
	if !m.probing.CompareAndSwap(false, true) {
		return !m.pos.IsOffline()
	}
	defer m.probing.Store(false)

	pctx, cancel := context.WithTimeout(ctx, m.timeout)
	err := m.backend.Ping(pctx)
	cancel()

	online := err == nil
	wasOffline := m.pos.IsOffline()
	m.pos.SetOffline(!online)
	if m.recorder != nil {
		m.recorder.SetOnline(online)
	}

	if !online {
		if !wasOffline {
			m.logger.Warn("backend unreachable, capturing payments offline", slog.String("error", err.Error()))
		}
		return false
	}

	if wasOffline && m.pos.QueueLength() > 0 {
		m.logger.Info("backend reachable again, syncing offline data", slog.Int("queue_length", m.pos.QueueLength()))
		if _, err := m.pos.SyncOfflineData(ctx); err != nil && !errs.Is(err, errs.ErrSyncInProgress) {
			m.logger.Warn("automatic sync did not finish", slog.String("error", err.Error()))
		}
	}
	return true
}
