// Package metrics holds the OpenTelemetry instruments recorded by the link
// cleaner. Instruments are created from whatever MeterProvider the caller
// wires in; the API server exports them through Prometheus.
package metrics

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// MeterName is the instrumentation scope used for every cleaner instrument.
const MeterName = "linkcleaner/cleaner"

// Probe outcomes recorded on the probes counter.
const (
	OutcomeRedirect   = "redirect"
	OutcomeNoRedirect = "no_redirect"
	OutcomeError      = "error"
	OutcomeBusy       = "busy"
)

// Cleaner groups the instruments recorded by the normalizer and resolver.
type Cleaner struct {
	// Normalizations counts Normalize calls, labelled by the rule that fired.
	Normalizations metric.Int64Counter
	// Probes counts shortener probes, labelled by outcome.
	Probes metric.Int64Counter
	// ProbeDuration records probe latency in seconds.
	ProbeDuration metric.Float64Histogram
}

// NewCleaner creates the cleaner instruments on mp.
func NewCleaner(mp metric.MeterProvider) (*Cleaner, error) {
	meter := mp.Meter(MeterName)

	normalizations, err := meter.Int64Counter("linkcleaner_normalizations",
		metric.WithDescription("Number of normalized links by unwrap rule"))
	if err != nil {
		return nil, fmt.Errorf("could not create normalizations counter: %w", err)
	}

	probes, err := meter.Int64Counter("linkcleaner_probes",
		metric.WithDescription("Number of shortener probes by outcome"))
	if err != nil {
		return nil, fmt.Errorf("could not create probes counter: %w", err)
	}

	probeDuration, err := meter.Float64Histogram("linkcleaner_probe_duration",
		metric.WithDescription("Shortener probe latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create probe duration histogram: %w", err)
	}

	return &Cleaner{
		Normalizations: normalizations,
		Probes:         probes,
		ProbeDuration:  probeDuration,
	}, nil
}
