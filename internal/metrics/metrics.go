// Package metrics exposes Prometheus collectors for backend calls and page
// renders.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns a private registry so tests can create as many as they like.
type Recorder struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	renders  *prometheus.CounterVec
}

// New creates a Recorder with all collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pokedex",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Backend calls made through the gateway.",
		}, []string{"method", "outcome", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pokedex",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Backend call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "outcome"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pokedex",
			Subsystem: "web",
			Name:      "page_renders_total",
			Help:      "Rendered front-end pages by page and controller status.",
		}, []string{"page", "status"}),
	}
	r.registry.MustRegister(
		r.requests,
		r.duration,
		r.renders,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveRequest implements api.Observer.
func (r *Recorder) ObserveRequest(method, outcome string, status int, elapsed time.Duration) {
	r.requests.WithLabelValues(method, outcome, strconv.Itoa(status)).Inc()
	r.duration.WithLabelValues(method, outcome).Observe(elapsed.Seconds())
}

// ObserveRender counts a rendered page.
func (r *Recorder) ObserveRender(page, status string) {
	r.renders.WithLabelValues(page, status).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
