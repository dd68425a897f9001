// Package telemetry wires OpenTelemetry tracing and lifecycle metrics for the
// desktop host and its sidecar supervisor.
//
// It sets up the OTLP trace exporter, records sidecar lifecycle counters on
// the global meter provider, and propagates trace context into the sidecar's
// environment so the child process can continue the host's trace.
package telemetry
