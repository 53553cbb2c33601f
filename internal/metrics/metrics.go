// Package metrics records conversion counters in a Prometheus registry.
//
// The CLI is a short-lived process, so nothing is served over HTTP; the
// registry can be written to a node_exporter textfile after a run.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	cerrors "github.com/ginjaninja78/fixed-width-to-csv/internal/errors"
)

const namespace = "fwcsv"

// Metrics holds the conversion metrics.
type Metrics struct {
	registry *prometheus.Registry

	conversions    *prometheus.CounterVec // Conversions by outcome
	failures       *prometheus.CounterVec // Failed runs by error kind
	linesRead      prometheus.Counter     // Input lines read
	recordsWritten prometheus.Counter     // CSV records written
	violations     prometheus.Counter     // Invalid lines found by check
	duration       prometheus.Histogram   // Seconds per file
}

// New creates the metrics and registers them with a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Total file conversions by outcome",
		}, []string{"outcome"}),

		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Total failed runs by error kind",
		}, []string{"kind"}),

		linesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_read_total",
			Help:      "Total fixed-width input lines read",
		}),

		recordsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_written_total",
			Help:      "Total CSV records written",
		}),

		violations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_violations_total",
			Help:      "Total invalid input lines reported by check runs",
		}),

		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Time spent converting one file",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}

	m.registry.MustRegister(
		m.conversions,
		m.failures,
		m.linesRead,
		m.recordsWritten,
		m.violations,
		m.duration,
	)
	return m
}

// ObserveConversion records one conversion run. err is the error returned
// by the engine, or nil.
func (m *Metrics) ObserveConversion(linesRead, recordsWritten int, elapsed time.Duration, err error) {
	m.linesRead.Add(float64(linesRead))
	m.recordsWritten.Add(float64(recordsWritten))
	m.duration.Observe(elapsed.Seconds())

	if err != nil {
		m.conversions.WithLabelValues("failure").Inc()
		m.ObserveFailure(err)
		return
	}
	m.conversions.WithLabelValues("success").Inc()
}

// ObserveFailure counts err under its error kind.
func (m *Metrics) ObserveFailure(err error) {
	if err == nil {
		return
	}
	m.failures.WithLabelValues(cerrors.Kind(err)).Inc()
}

// ObserveViolations records the outcome of a check run.
func (m *Metrics) ObserveViolations(linesRead, violations int) {
	m.linesRead.Add(float64(linesRead))
	m.violations.Add(float64(violations))
}

// WriteTextfile writes the registry in the text exposition format to path,
// creating the parent directory if needed.
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
