package client

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the outbound request collectors on their own registry, so
// several clients in one process (tests) never collide on registration.
type Metrics struct {
	Registry *prometheus.Registry

	inFlight prometheus.Gauge
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "eventflow_client_in_flight_requests",
			Help: "In-flight requests to the API.",
		}),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eventflow_client_requests_total",
				Help: "Total number of requests to the API.",
			},
			[]string{"method", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "eventflow_client_request_duration_seconds",
				Help:    "API request latencies in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "code"},
		),
	}
	m.Registry.MustRegister(m.inFlight, m.requests, m.duration)
	return m
}

// InstrumentRoundTripper wraps next with the in-flight, counter and latency
// collectors. Paths are left out of the labels; ids in them are unbounded.
func (m *Metrics) InstrumentRoundTripper(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperInFlight(m.inFlight,
		promhttp.InstrumentRoundTripperCounter(m.requests,
			promhttp.InstrumentRoundTripperDuration(m.duration, next),
		),
	)
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
