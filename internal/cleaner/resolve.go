package cleaner

import (
	"context"
	"strings"
	"time"

	"linkcleaner/pkg/domain"
	"linkcleaner/pkg/logger"
	"linkcleaner/pkg/metrics"
	"linkcleaner/pkg/redirect"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Resolver unwinds shortened links by peeking at their first redirect. It
// never follows a redirect chain and never reports failure: anything other
// than a clean 3xx with a Location header leaves the link as given.
type Resolver struct {
	tables  domain.Tables
	prober  redirect.Prober
	slots   *semaphore.Weighted
	tracer  trace.Tracer
	metrics *metrics.Cleaner
}

// Resolve returns the immediate redirect target of input when its host is a
// known shortener, or input unchanged in every other case. Hosts that are not
// shorteners short-circuit before any I/O.
func (r *Resolver) Resolve(ctx context.Context, input string) string {
	u, ok := parseAbsolute(input)
	if !ok {
		return input
	}

	shortener, ok := r.tables.MatchShortener(u.Hostname())
	if !ok {
		return input
	}

	ctx = logger.WithFields(ctx, zap.String("URL", input), zap.String("shortener", shortener))
	ctx, span := r.tracer.Start(ctx, "cleaner.Resolve",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("shortener", shortener)))
	defer span.End()

	if err := r.slots.Acquire(ctx, 1); err != nil {
		logger.Debug(ctx, "gave up waiting for a probe slot", zap.Error(err))
		r.record(ctx, metrics.OutcomeBusy)

		return input
	}
	defer r.slots.Release(1)

	start := time.Now()
	hop, err := r.prober.Probe(ctx, strings.TrimSpace(input))
	r.metrics.ProbeDuration.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		// timeouts, refused connections and cancelled contexts all land here.
		logger.Debug(ctx, "shortener probe failed", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "probe failed")
		r.record(ctx, metrics.OutcomeError)

		return input
	}

	span.SetAttributes(attribute.Int("http.status_code", hop.StatusCode))
	if !hop.IsRedirect() {
		logger.Debug(ctx, "shortener did not redirect", zap.Int("status", hop.StatusCode))
		r.record(ctx, metrics.OutcomeNoRedirect)

		return input
	}

	logger.Debug(ctx, "shortener resolved", zap.String("location", hop.Location))
	r.record(ctx, metrics.OutcomeRedirect)

	return hop.Location
}

func (r *Resolver) record(ctx context.Context, outcome string) {
	r.metrics.Probes.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
