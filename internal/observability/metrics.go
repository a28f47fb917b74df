// Package observability holds the Prometheus instrumentation for the
// projection pipeline.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts pipeline outcomes.
type Metrics struct {
	EventsApplied       *prometheus.CounterVec
	EventsSkipped       prometheus.Counter
	EventsUnknown       prometheus.Counter
	MetaprotocolErrored prometheus.Counter
	ApplyDuration       prometheus.Histogram
}

// NewMetrics builds and registers the pipeline metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EventsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mediagraph_events_applied_total",
			Help: "Events applied to the projection, by event name.",
		}, []string{"event"}),
		EventsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mediagraph_events_skipped_total",
			Help: "Events at or below the watermark skipped during replay.",
		}),
		EventsUnknown: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mediagraph_events_unknown_total",
			Help: "Events with no registered handler.",
		}),
		MetaprotocolErrored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mediagraph_metaprotocol_errored_total",
			Help: "Metaprotocol transactions resolved as errored.",
		}),
		ApplyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mediagraph_event_apply_seconds",
			Help:    "Latency of applying one event inside its transaction.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.EventsApplied, m.EventsSkipped, m.EventsUnknown, m.MetaprotocolErrored, m.ApplyDuration)
	return m
}
