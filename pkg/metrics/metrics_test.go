package metrics_test

import (
	"context"
	"linkcleaner/pkg/metrics"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestNewCleaner_Noop(t *testing.T) {
	m, err := metrics.NewCleaner(noop.NewMeterProvider())
	require.NoError(t, err)
	require.NotNil(t, m.Normalizations)
	require.NotNil(t, m.Probes)
	require.NotNil(t, m.ProbeDuration)
}

func TestNewCleaner_RecordsToReader(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := metrics.NewCleaner(mp)
	require.NoError(t, err)

	ctx := context.Background()
	m.Probes.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", metrics.OutcomeRedirect)))
	m.ProbeDuration.Record(ctx, 0.02)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Equal(t, metrics.MeterName, rm.ScopeMetrics[0].Scope.Name)

	names := make([]string, 0, len(rm.ScopeMetrics[0].Metrics))
	for _, md := range rm.ScopeMetrics[0].Metrics {
		names = append(names, md.Name)
	}
	require.ElementsMatch(t, []string{"linkcleaner_probes", "linkcleaner_probe_duration"}, names)
}

func TestDefaultBuckets_Sorted(t *testing.T) {
	for i := 1; i < len(metrics.DefaultBuckets); i++ {
		require.Less(t, metrics.DefaultBuckets[i-1], metrics.DefaultBuckets[i])
	}
}
