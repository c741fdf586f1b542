package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "tracelight"

// Collector holds all Prometheus metrics for one engine instance.
// Each collector owns its own registry so that multiple engines (and tests)
// never collide on metric registration.
type Collector struct {
	registry *prometheus.Registry

	// CallsIntercepted counts in-scope calls routed through the correlator.
	CallsIntercepted prometheus.Counter

	// CallsAborted counts in-scope calls that failed before a response.
	CallsAborted prometheus.Counter

	// RecordsAppended counts exchange records written to the durable log.
	RecordsAppended prometheus.Counter

	// AppendFailures counts swallowed durable-log write failures.
	AppendFailures prometheus.Counter

	// IndexFailures counts swallowed SQLite index write failures.
	IndexFailures prometheus.Counter

	// ReportRegenerations counts successful report rewrites.
	ReportRegenerations prometheus.Counter

	// ReportFailures counts swallowed report regeneration failures.
	ReportFailures prometheus.Counter

	// OrphansDrained counts orphan records synthesized at shutdown.
	OrphansDrained prometheus.Counter
}

// NewCollector creates a collector backed by the given registry.
// A nil registry creates a private one.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		CallsIntercepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_intercepted_total",
			Help:      "In-scope calls routed through the correlator.",
		}),
		CallsAborted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_aborted_total",
			Help:      "In-scope calls that failed before a response arrived.",
		}),
		RecordsAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_appended_total",
			Help:      "Exchange records appended to the durable log.",
		}),
		AppendFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "append_failures_total",
			Help:      "Durable log append failures (swallowed, best-effort).",
		}),
		IndexFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "index_failures_total",
			Help:      "SQLite index write failures (swallowed, best-effort).",
		}),
		ReportRegenerations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_regenerations_total",
			Help:      "Successful report regenerations.",
		}),
		ReportFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_failures_total",
			Help:      "Report regeneration failures (swallowed, best-effort).",
		}),
		OrphansDrained: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orphans_drained_total",
			Help:      "Orphan records synthesized at shutdown drain.",
		}),
	}

	registry.MustRegister(
		c.CallsIntercepted,
		c.CallsAborted,
		c.RecordsAppended,
		c.AppendFailures,
		c.IndexFailures,
		c.ReportRegenerations,
		c.ReportFailures,
		c.OrphansDrained,
	)

	return c
}

// Registry returns the collector's Prometheus registry, for exposition or
// test scraping.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
