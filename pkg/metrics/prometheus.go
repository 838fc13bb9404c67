package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus is a Recorder backed by Prometheus collectors. Collectors are
// registered on first use.
type Prometheus struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	generations       *prometheus.CounterVec
	pairs             prometheus.Counter
	generationLatency prometheus.Histogram

	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

var _ Recorder = (*Prometheus)(nil)

// NewPrometheus creates a Prometheus recorder.
//
// Parameters:
//   - reg: registerer (prometheus.DefaultRegisterer if nil)
//   - namespace: metric namespace ("field_service" if empty)
func NewPrometheus(reg prometheus.Registerer, namespace string) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "field_service"
	}
	return &Prometheus{reg: reg, namespace: namespace}
}

func (p *Prometheus) ensureRegistered() {
	p.once.Do(func() {
		p.generations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "generation",
			Name:      "attempts_total",
			Help:      "Outing generation attempts by outcome.",
		}, []string{"outcome"})

		p.pairs = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "generation",
			Name:      "pairs_total",
			Help:      "Brother/territory pairs produced by generation.",
		})

		p.generationLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "generation",
			Name:      "duration_seconds",
			Help:      "Latency of outing generation in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms .. ~2s
		})

		p.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"})

		p.requestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"})

		p.reg.MustRegister(
			p.generations,
			p.pairs,
			p.generationLatency,
			p.requests,
			p.requestLatency,
		)
	})
}

func (p *Prometheus) RecordGeneration(outcome string, pairs int, elapsed time.Duration) {
	p.ensureRegistered()
	p.generations.WithLabelValues(outcome).Inc()
	if pairs > 0 {
		p.pairs.Add(float64(pairs))
	}
	p.generationLatency.Observe(elapsed.Seconds())
}

func (p *Prometheus) RecordRequest(method, route string, status int, elapsed time.Duration) {
	p.ensureRegistered()
	if route == "" {
		route = "unmatched"
	}
	p.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.requestLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
