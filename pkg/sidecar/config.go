package sidecar

import (
	"fmt"
	"strings"
)

// Config represents the complete configuration of the desktop host
type Config struct {
	Sidecar RuntimeConfig `yaml:"sidecar"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// RuntimeConfig defines how the sidecar is launched
type RuntimeConfig struct {
	Enabled bool              `yaml:"enabled"`
	Runtime string            `yaml:"runtime"` // executable looked up on PATH
	Env     map[string]string `yaml:"env"`
}

// LoggingConfig defines logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json", "text"
}

// MetricsConfig defines the optional Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Path    string `yaml:"path"`
}

// TracingConfig defines OpenTelemetry tracing settings
type TracingConfig struct {
	Enabled      bool              `yaml:"enabled"`
	Endpoint     string            `yaml:"endpoint"`
	Insecure     bool              `yaml:"insecure"`
	ServiceName  string            `yaml:"service_name"`
	Headers      map[string]string `yaml:"headers"`       // sent with every OTLP export
	ResourceTags map[string]string `yaml:"resource_tags"` // extra resource attributes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Sidecar: RuntimeConfig{
			Enabled: true,
			Runtime: DefaultRuntime,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    "127.0.0.1:9464",
			Path:    "/metrics",
		},
		Tracing: TracingConfig{
			Enabled:     false,
			Endpoint:    "localhost:4317",
			Insecure:    true,
			ServiceName: "polis-desktop",
		},
	}
}

// Validate checks field values
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Sidecar.Runtime) == "" {
		return fmt.Errorf("sidecar.runtime cannot be empty")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format %q is not one of text, json", c.Logging.Format)
	}

	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr is required when metrics are enabled")
	}

	return nil
}

// EnvList converts the configured environment to KEY=VALUE form
func (r RuntimeConfig) EnvList() []string {
	env := make([]string, 0, len(r.Env))
	for k, v := range r.Env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	return env
}
