package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics agrupa las métricas Prometheus del dashboard.
// Un *Metrics nil es válido y no registra nada.
type Metrics struct {
	GatewayRequests *prometheus.CounterVec
	GatewayLatency  *prometheus.HistogramVec
	ViewLoads       *prometheus.CounterVec
	Mutations       *prometheus.CounterVec
}

// New crea y registra todas las métricas en reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		GatewayRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "petwelfare_gateway_requests_total",
			Help: "Requests issued to the welfare API, by method, path and outcome",
		}, []string{"method", "path", "outcome"}),
		GatewayLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "petwelfare_gateway_request_seconds",
			Help:    "Latency of welfare API requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		ViewLoads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "petwelfare_view_loads_total",
			Help: "Read model load resolutions, by view and outcome",
		}, []string{"view", "outcome"}),
		Mutations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "petwelfare_mutations_total",
			Help: "Create/delete mutations, by kind and outcome",
		}, []string{"kind", "outcome"}),
	}
}

func (m *Metrics) ObserveGatewayRequest(method, path, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.GatewayRequests.WithLabelValues(method, path, outcome).Inc()
	m.GatewayLatency.WithLabelValues(method, path).Observe(took.Seconds())
}

func (m *Metrics) ObserveViewLoad(view, outcome string) {
	if m == nil {
		return
	}
	m.ViewLoads.WithLabelValues(view, outcome).Inc()
}

func (m *Metrics) ObserveMutation(kind, outcome string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(kind, outcome).Inc()
}
