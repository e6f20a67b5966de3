package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements the analytics Metrics interface using Prometheus.
type Recorder struct {
	outcomes *prometheus.CounterVec
	retries  *prometheus.CounterVec
	upstream *prometheus.HistogramVec
	client   *prometheus.CounterVec
}

// New creates a Prometheus recorder registered on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		outcomes: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fxdash",
				Subsystem: "proxy",
				Name:      "outcomes_total",
				Help:      "Proxy route outcomes by resource (ok, fallback, error)",
			},
			[]string{"resource", "outcome"},
		),
		retries: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fxdash",
				Subsystem: "proxy",
				Name:      "retries_total",
				Help:      "Upstream retries against a secondary model",
			},
			[]string{"resource", "model"},
		),
		upstream: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "fxdash",
				Subsystem: "upstream",
				Name:      "duration_seconds",
				Help:      "Duration of upstream analytics calls in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 8, 15, 25, 40},
			},
			[]string{"resource", "class"},
		),
		client: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fxdash",
				Subsystem: "client",
				Name:      "results_total",
				Help:      "Client data-access results by resource and source (upstream, fallback, mock, error)",
			},
			[]string{"resource", "source"},
		),
	}
}

// RecordOutcome counts a proxy route outcome.
func (r *Recorder) RecordOutcome(resource, outcome string) {
	r.outcomes.WithLabelValues(resource, outcome).Inc()
}

// RecordRetry counts a retry against model.
func (r *Recorder) RecordRetry(resource, model string) {
	r.retries.WithLabelValues(resource, model).Inc()
}

// RecordUpstream records one upstream call duration; class is a status class or "transport"/"timeout".
func (r *Recorder) RecordUpstream(resource, class string, seconds float64) {
	r.upstream.WithLabelValues(resource, class).Observe(seconds)
}

// RecordClientResult counts a client data-access result.
func (r *Recorder) RecordClientResult(resource, source string) {
	r.client.WithLabelValues(resource, source).Inc()
}
