package telemetry

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestEnvPropagator_RoundTrip(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, span := tp.Tracer("test").Start(context.Background(), "parent")
	defer span.End()

	p := EnvPropagator{Propagator: propagation.TraceContext{}}
	env := p.InjectProcessEnv(ctx, []string{"PATH=/usr/bin", "TRACEPARENT=stale"})

	var traceparent []string
	for _, e := range env {
		if strings.HasPrefix(e, "TRACEPARENT=") {
			traceparent = append(traceparent, e)
		}
	}
	require.Len(t, traceparent, 1)
	assert.NotEqual(t, "TRACEPARENT=stale", traceparent[0])
	assert.Contains(t, env, "PATH=/usr/bin")

	carrier := envCarrier{}
	for _, e := range env {
		if key, value, ok := strings.Cut(e, "="); ok {
			carrier[key] = value
		}
	}
	extracted := propagation.TraceContext{}.Extract(context.Background(), carrier)
	sc := trace.SpanContextFromContext(extracted)
	assert.True(t, sc.IsValid())
	assert.Equal(t, span.SpanContext().TraceID(), sc.TraceID())
}

func TestEnvPropagator_NoSpanLeavesEnvUntouched(t *testing.T) {
	p := EnvPropagator{Propagator: propagation.TraceContext{}}
	env := []string{"A=1", "B=2"}

	assert.Equal(t, env, p.InjectProcessEnv(context.Background(), env))
}
