package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор prometheus-метрик сервиса.
// Все методы безопасно вызывать на nil (метрики выключены).
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	bookingSubmissions  *prometheus.CounterVec
	draftSnapshotWrites *prometheus.CounterVec
	activeSessions      prometheus.Gauge
}

// New регистрирует метрики в собственном реестре
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		bookingSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_submissions_total",
			Help:        "Booking submissions by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		draftSnapshotWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "draft_snapshot_writes_total",
			Help:        "Draft snapshot storage operations",
			ConstLabels: constLabels,
		}, []string{"op", "result"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "booking_sessions_active",
			Help:        "Number of in-memory booking sessions",
			ConstLabels: constLabels,
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.bookingSubmissions,
		m.draftSnapshotWrites,
		m.activeSessions,
	)

	return m
}

// Handler отдаёт метрики в формате prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) IncBookingSubmission(outcome string) {
	if m == nil {
		return
	}
	m.bookingSubmissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncSnapshotWrite(op, result string) {
	if m == nil {
		return
	}
	m.draftSnapshotWrites.WithLabelValues(op, result).Inc()
}

func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}
