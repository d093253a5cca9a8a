package cleaner

import (
	"context"
	"fmt"

	"linkcleaner/internal/config"
	"linkcleaner/pkg/domain"
	"linkcleaner/pkg/metrics"
	"linkcleaner/pkg/redirect"

	"github.com/PuerkitoBio/purell"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/semaphore"
)

// DefaultMaxInFlight bounds concurrent shortener probes when Options leaves it unset.
const DefaultMaxInFlight = 32

// Options configure a Cleaner. The zero value is usable: it selects the
// built-in tables and rules and disables telemetry.
type Options struct {
	// Tables overrides the tracking-parameter and shortener sets.
	Tables *domain.Tables
	// Rules overrides the unwrap rules. A non-nil empty slice disables them.
	Rules []Rule
	// MaxInFlight bounds the number of probes running at the same time.
	MaxInFlight int64
	// MeterProvider receives the cleaner metrics.
	MeterProvider metric.MeterProvider
	// TracerProvider receives spans around shortener probes.
	TracerProvider trace.TracerProvider
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxInFlight: cfg.Resolver.MaxInFlight,
	}
}

// cleaner is the concrete implementation of the Cleaner interface. It
// composes a Normalizer and a Resolver following the two-pass policy.
type cleaner struct {
	tables     domain.Tables
	normalizer *Normalizer
	resolver   *Resolver
	metrics    *metrics.Cleaner
}

// Normalize implements Cleaner.
func (c *cleaner) Normalize(input string) string {
	out, rule := c.normalizer.normalize(input)
	c.recordNormalization(rule)

	return out
}

// Resolve implements Cleaner.
func (c *cleaner) Resolve(ctx context.Context, input string) string {
	return c.resolver.Resolve(ctx, input)
}

// Clean normalizes input, optionally resolves it, and normalizes the resolved
// target again because destinations commonly carry their own tracking
// parameters.
func (c *cleaner) Clean(ctx context.Context, input string, resolve bool) domain.CleanResult {
	first, rule := c.normalizer.normalize(input)
	c.recordNormalization(rule)

	res := domain.CleanResult{
		Input:  input,
		Output: first,
		Rule:   rule,
	}

	if resolve {
		if resolved := c.resolver.Resolve(ctx, first); resolved != first {
			res.Resolved = resolved
			res.Output = c.Normalize(resolved)
		}
	}

	res.Changed = !sameURL(input, res.Output)

	return res
}

// Tables implements Cleaner.
func (c *cleaner) Tables() domain.Tables {
	return c.tables
}

func (c *cleaner) recordNormalization(rule string) {
	if rule == "" {
		rule = "generic"
	}
	c.metrics.Normalizations.Add(context.Background(), 1, metric.WithAttributes(attribute.String("rule", rule)))
}

// sameURL compares two links after safe normalization so that escaping or
// case differences in scheme and host do not count as a change.
func sameURL(a, b string) bool {
	if a == b {
		return true
	}

	na, errA := purell.NormalizeURLString(a, purell.FlagsSafe)
	nb, errB := purell.NormalizeURLString(b, purell.FlagsSafe)
	if errA != nil || errB != nil {
		return false
	}

	return na == nb
}

// New creates a Cleaner that probes shorteners through prober.
func New(prober redirect.Prober, options Options) (Cleaner, error) {
	tables := domain.DefaultTables()
	if options.Tables != nil {
		tables = *options.Tables
	}
	rules := options.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	if options.MaxInFlight <= 0 {
		options.MaxInFlight = DefaultMaxInFlight
	}
	if options.MeterProvider == nil {
		options.MeterProvider = metricnoop.NewMeterProvider()
	}
	if options.TracerProvider == nil {
		options.TracerProvider = tracenoop.NewTracerProvider()
	}

	m, err := metrics.NewCleaner(options.MeterProvider)
	if err != nil {
		return nil, fmt.Errorf("could not create cleaner metrics: %w", err)
	}

	return &cleaner{
		tables:     tables,
		normalizer: NewNormalizer(tables, rules),
		resolver: &Resolver{
			tables:  tables,
			prober:  prober,
			slots:   semaphore.NewWeighted(options.MaxInFlight),
			tracer:  options.TracerProvider.Tracer("linkcleaner/cleaner"),
			metrics: m,
		},
		metrics: m,
	}, nil
}
