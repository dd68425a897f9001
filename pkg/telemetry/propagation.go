package telemetry

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// EnvPropagator writes trace context into a child process environment.
// Keys are upper-cased (TRACEPARENT, TRACESTATE, BAGGAGE).
type EnvPropagator struct {
	// Propagator overrides the global text map propagator when set
	Propagator propagation.TextMapPropagator
}

// InjectProcessEnv returns env with the trace context of ctx added.
// Existing entries with the same key are replaced.
func (p EnvPropagator) InjectProcessEnv(ctx context.Context, env []string) []string {
	prop := p.Propagator
	if prop == nil {
		prop = otel.GetTextMapPropagator()
	}

	carrier := envCarrier{}
	prop.Inject(ctx, carrier)
	if len(carrier) == 0 {
		return env
	}

	result := make([]string, 0, len(env)+len(carrier))
	for _, e := range env {
		key, _, _ := strings.Cut(e, "=")
		if _, replaced := carrier[key]; replaced {
			continue
		}
		result = append(result, e)
	}
	for k, v := range carrier {
		result = append(result, k+"="+v)
	}
	return result
}

type envCarrier map[string]string

func (c envCarrier) Get(key string) string {
	return c[strings.ToUpper(key)]
}

func (c envCarrier) Set(key, value string) {
	c[strings.ToUpper(key)] = value
}

func (c envCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}
