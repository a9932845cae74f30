// Package metrics exposes Prometheus counters for planning imports.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "planning"

// Metrics groups the counters updated by the service and the watcher.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	DocumentsParsed prometheus.Counter
	ParseFailures   prometheus.Counter
	WeeksExtracted  prometheus.Counter
	CacheHits       prometheus.Counter
	StoreWrites     prometheus.Counter
	StoreFailures   prometheus.Counter
}

// New registers the counters on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		DocumentsParsed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_parsed_total",
			Help:      "Planning PDFs parsed.",
		}),
		ParseFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_failures_total",
			Help:      "Planning PDFs that could not be read.",
		}),
		WeeksExtracted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weeks_extracted_total",
			Help:      "ISO weeks found across parsed plannings.",
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_cache_hits_total",
			Help:      "Parses served from the digest cache.",
		}),
		StoreWrites: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_weeks_written_total",
			Help:      "Weekly records upserted into the store.",
		}),
		StoreFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_failures_total",
			Help:      "Store writes that failed after retries.",
		}),
	}
}

// Registry returns the registry backing the counters.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveParse records a successful parse yielding weeks.
func (m *Metrics) ObserveParse(weeks int, cached bool) {
	if m == nil {
		return
	}
	if cached {
		m.CacheHits.Inc()
		return
	}
	m.DocumentsParsed.Inc()
	m.WeeksExtracted.Add(float64(weeks))
}

// ObserveParseFailure records a document that could not be read.
func (m *Metrics) ObserveParseFailure() {
	if m == nil {
		return
	}
	m.ParseFailures.Inc()
}

// ObserveStore records the outcome of an upsert.
func (m *Metrics) ObserveStore(written int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.StoreFailures.Inc()
		return
	}
	m.StoreWrites.Add(float64(written))
}
