// Package metrics holds the Prometheus collectors for pipeline runs.
//
// Each Collector owns its registry so tests and concurrent CLI runs never
// collide on global registration. A nil *Collector is valid and records
// nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "floorplan"

// Invocation outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Collector holds the pipeline metrics.
type Collector struct {
	registry *prometheus.Registry

	Invocations *prometheus.CounterVec
	Duration    prometheus.Histogram
	Rectangles  prometheus.Counter
	Lines       prometheus.Counter
	Nodes       prometheus.Counter
}

// NewCollector creates a collector registered on a fresh registry.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	invocations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invocations_total",
			Help:      "Total number of engine invocations by outcome",
		},
		[]string{"outcome"},
	)

	duration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "invocation_duration_seconds",
			Help:      "Engine invocation duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	rectangles := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rectangles_detected_total",
		Help:      "Total number of rectangles fed to the engine",
	})
	lines := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lines_created_total",
		Help:      "Total number of corridor lines created",
	})
	nodes := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "nodes_created_total",
		Help:      "Total number of graph nodes created",
	})

	registry.MustRegister(invocations, duration, rectangles, lines, nodes)

	return &Collector{
		registry:    registry,
		Invocations: invocations,
		Duration:    duration,
		Rectangles:  rectangles,
		Lines:       lines,
		Nodes:       nodes,
	}
}

// Observe records one finished invocation. Shape counts are only added for
// successful invocations.
func (c *Collector) Observe(err error, elapsed time.Duration, rects, lines, nodes int) {
	if c == nil {
		return
	}
	c.Duration.Observe(elapsed.Seconds())
	if err != nil {
		c.Invocations.WithLabelValues(OutcomeError).Inc()
		return
	}
	c.Invocations.WithLabelValues(OutcomeOK).Inc()
	c.Rectangles.Add(float64(rects))
	c.Lines.Add(float64(lines))
	c.Nodes.Add(float64(nodes))
}

// Registry returns the Prometheus registry for this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteFile writes the current values in the text exposition format, for
// the node exporter textfile collector.
func (c *Collector) WriteFile(path string) error {
	if c == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, c.registry)
}
