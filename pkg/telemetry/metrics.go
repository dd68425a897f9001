package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	metricsOnce           sync.Once
	metricsInitErr        error
	lifecycleEventCounter metric.Int64Counter
)

// RecordLifecycle counts a sidecar lifecycle event (spawn, stop) and its outcome.
func RecordLifecycle(ctx context.Context, event, outcome string) {
	if err := ensureMetrics(); err != nil {
		return
	}

	lifecycleEventCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("sidecar.event", event),
		attribute.String("sidecar.outcome", outcome),
	))
}

func ensureMetrics() error {
	metricsOnce.Do(func() {
		meter := otel.GetMeterProvider().Meter("polis-desktop.sidecar")

		lifecycleEventCounter, metricsInitErr = meter.Int64Counter(
			"sidecar.lifecycle.events_total",
			metric.WithDescription("Sidecar lifecycle events partitioned by outcome"),
			metric.WithUnit("{count}"),
		)
	})

	return metricsInitErr
}
