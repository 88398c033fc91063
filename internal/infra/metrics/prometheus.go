package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is registered on its own registry so every fx app and test gets fresh collectors.
type Metrics struct {
	registry       *prometheus.Registry
	queued         *prometheus.CounterVec
	replayed       *prometheus.CounterVec
	queueDepth     prometheus.Gauge
	syncRuns       *prometheus.CounterVec
	online         prometheus.Gauge
	offlinePayment prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		queued: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_offline_operations_queued_total",
			Help: "Operations captured while offline",
		}, []string{"operation"}),
		replayed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_offline_operations_replayed_total",
			Help: "Replay attempts of queued operations",
		}, []string{"operation", "ok"}),
		queueDepth: f.NewGauge(prometheus.GaugeOpts{
			Name: "pos_offline_queue_depth",
			Help: "Operations waiting for replay",
		}),
		syncRuns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_sync_runs_total",
			Help: "Offline data sync runs by outcome",
		}, []string{"outcome"}),
		online: f.NewGauge(prometheus.GaugeOpts{
			Name: "pos_backend_online",
			Help: "1 when the backend was reachable at the last probe",
		}),
		offlinePayment: f.NewCounter(prometheus.CounterOpts{
			Name: "pos_offline_payments_total",
			Help: "Payments captured locally while offline",
		}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) OperationQueued(name string) {
	m.queued.WithLabelValues(name).Inc()
}

func (m *Metrics) OperationReplayed(name string, ok bool) {
	m.replayed.WithLabelValues(name, strconv.FormatBool(ok)).Inc()
}

func (m *Metrics) QueueDepth(n int) {
	m.queueDepth.Set(float64(n))
}

// SyncFinished records one sync run. outcome is "ok", "partial", "rejected" or "error".
func (m *Metrics) SyncFinished(outcome string) {
	m.syncRuns.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SetOnline(online bool) {
	if online {
		m.online.Set(1)
		return
	}
	m.online.Set(0)
}

func (m *Metrics) OfflinePaymentCaptured() {
	m.offlinePayment.Inc()
}
