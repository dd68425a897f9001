package sidecar

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/polisai/polis-desktop/pkg/telemetry"
)

// Supervisor starts the bundled sidecar at host startup and kills it at host
// close. It manages at most one process per State and never restarts it.
type Supervisor struct {
	runtime  string
	disabled bool
	env      []string
	spawner  Spawner
	recorder Recorder
	logger   *slog.Logger
}

// Option configures a Supervisor
type Option func(*Supervisor)

// WithRuntime overrides the executable used to run the entry point
func WithRuntime(runtime string) Option {
	return func(s *Supervisor) {
		if runtime != "" {
			s.runtime = runtime
		}
	}
}

// WithSpawner replaces the os/exec spawner
func WithSpawner(spawner Spawner) Option {
	return func(s *Supervisor) {
		s.spawner = spawner
	}
}

// WithRecorder attaches a metrics recorder
func WithRecorder(recorder Recorder) Option {
	return func(s *Supervisor) {
		if recorder != nil {
			s.recorder = recorder
		}
	}
}

// WithEnv adds environment variables for the child
func WithEnv(env ...string) Option {
	return func(s *Supervisor) {
		s.env = append(s.env, env...)
	}
}

// WithDisabled turns Initialize into a no-op that never spawns
func WithDisabled(disabled bool) Option {
	return func(s *Supervisor) {
		s.disabled = disabled
	}
}

// NewSupervisor creates a supervisor. Without WithSpawner it launches real
// processes through ExecSpawner with trace context propagated to the child.
func NewSupervisor(logger *slog.Logger, opts ...Option) *Supervisor {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Supervisor{
		runtime:  DefaultRuntime,
		recorder: nopRecorder{},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.spawner == nil {
		s.spawner = NewExecSpawner(logger, telemetry.EnvPropagator{})
	}

	return s
}

// Initialize resolves the artifact under resourceRoot and starts the sidecar
// if it is present.
//
// Only an unusable resourceRoot is returned as an error. A missing artifact
// and a failed spawn both yield an empty State and a nil error so the host
// keeps running without the background service.
func (s *Supervisor) Initialize(ctx context.Context, resourceRoot string) (*State, error) {
	ctx, span := telemetry.StartSpan(ctx, "sidecar.initialize", attribute.String("sidecar.resource_root", resourceRoot))

	artifact, err := ResolveArtifact(resourceRoot)
	if err != nil {
		s.logger.Error("Cannot resolve sidecar resources", "root", resourceRoot, "error", err)
		telemetry.EndSpan(span, err)
		return nil, err
	}

	state := NewState()
	outcome := s.start(ctx, state, artifact)
	span.SetAttributes(attribute.String("sidecar.outcome", outcome))
	telemetry.EndSpan(span, nil)

	return state, nil
}

func (s *Supervisor) start(ctx context.Context, state *State, artifact ArtifactPath) string {
	outcome := s.spawn(ctx, state, artifact)
	if outcome != OutcomeStarted {
		state.markNeverStarted()
	}

	s.recorder.RecordSpawn(outcome)
	s.recorder.UpdateProcessStatus(outcome == OutcomeStarted)
	telemetry.RecordLifecycle(ctx, "spawn", outcome)

	return outcome
}

func (s *Supervisor) spawn(ctx context.Context, state *State, artifact ArtifactPath) string {
	if s.disabled {
		s.logger.Info("Sidecar disabled by configuration", "path", artifact.Entry)
		return OutcomeDisabled
	}

	if !artifact.Exists() {
		s.logger.Info("Sidecar not found, running in dev mode", "path", artifact.Entry)
		return OutcomeAbsent
	}

	proc, err := s.spawner.Spawn(ctx, Command{
		Runtime: s.runtime,
		Args:    []string{artifact.Entry},
		WorkDir: artifact.Dir,
		Env:     s.env,
	})
	if err != nil {
		spawnErr := &SpawnError{Runtime: s.runtime, Entry: artifact.Entry, Err: err}
		s.logger.Warn("Failed to start sidecar", "error", spawnErr)
		return OutcomeFailed
	}

	state.store(proc)

	attrs := []any{"pid", proc.Pid(), "runtime", s.runtime, "entry", artifact.Entry}
	if traceID := telemetry.TraceID(ctx); traceID != "" {
		attrs = append(attrs, "trace_id", traceID)
	}
	s.logger.Info("Sidecar started", attrs...)

	return OutcomeStarted
}

// Shutdown kills the supervised process, if any. It is safe to call with a
// nil or empty state and safe to call more than once; only the first call
// that finds a handle issues a kill. Kill errors are logged and discarded.
func (s *Supervisor) Shutdown(ctx context.Context, state *State) {
	if state == nil {
		return
	}

	h := state.Take()
	if h == nil {
		return
	}

	ctx, span := telemetry.StartSpan(ctx, "sidecar.shutdown", attribute.Int("sidecar.pid", h.pid))
	defer span.End()

	s.logger.Info("Stopping sidecar", "pid", h.pid)

	err := h.proc.Kill()
	if err != nil {
		s.logger.Debug("Sidecar kill failed", "pid", h.pid, "error", err)
	}

	result := "ok"
	if err != nil {
		result = "error"
	}
	s.recorder.RecordStop(err)
	s.recorder.UpdateProcessStatus(false)
	telemetry.RecordLifecycle(ctx, "stop", result)
}
