// Package metrics records per-run Prometheus metrics for errdemo: how each
// unit ended, which failure conditions were seen and whether they were
// handled, and how long units took. Each run owns its registry, so nothing
// is registered globally.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "errdemo"
	// outcomeSkipped matches demo.OutcomeSkipped.String().
	outcomeSkipped = "skipped"
)

// Metrics holds the collectors of one run.
type Metrics struct {
	registry   *prometheus.Registry
	units      *prometheus.CounterVec
	conditions *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		units: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "units_total",
			Help:      "Demonstration units executed, by unit and outcome.",
		}, []string{"unit", "outcome"}),
		conditions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conditions_total",
			Help:      "Failure conditions raised by units, by kind and whether a handler caught them.",
		}, []string{"kind", "handled"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "unit_duration_seconds",
			Help:      "Wall time of each unit, including its cleanup action.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 8),
		}, []string{"unit"}),
	}
	m.registry.MustRegister(m.units, m.conditions, m.duration)
	return m
}

// ObserveUnit records the outcome and duration of one unit. Skipped units
// are counted but never ran, so they add no duration sample.
func (m *Metrics) ObserveUnit(unit, outcome string, d time.Duration) {
	m.units.WithLabelValues(unit, outcome).Inc()
	if outcome == outcomeSkipped {
		return
	}
	m.duration.WithLabelValues(unit).Observe(d.Seconds())
}

// ObserveCondition records a failure condition of the given kind.
func (m *Metrics) ObserveCondition(kind string, handled bool) {
	m.conditions.WithLabelValues(kind, strconv.FormatBool(handled)).Inc()
}

// Registry exposes the underlying registry, e.g. for an HTTP handler in an
// embedding process or for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteFile writes the registry in Prometheus text format to path, atomically,
// suitable for the node exporter's textfile collector.
func (m *Metrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
