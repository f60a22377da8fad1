package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry        *prometheus.Registry
	IdeasCreated    prometheus.Counter
	IdeasDeleted    prometheus.Counter
	Votes           *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New registers the portal collectors on a fresh registry, so tests can
// create as many instances as they need.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		IdeasCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ideas_created_total",
			Help: "Number of ideas submitted.",
		}),
		IdeasDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ideas_deleted_total",
			Help: "Number of ideas deleted.",
		}),
		Votes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "idea_votes_total",
			Help: "Votes cast, by vote type.",
		}, []string{"type"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		m.IdeasCreated,
		m.IdeasDeleted,
		m.Votes,
		m.RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
