package sidecar

import (
	"context"
)

// DefaultRuntime is the executable used to run the sidecar entry point.
// It is resolved through the OS executable search path.
const DefaultRuntime = "node"

// Command describes a single sidecar launch
type Command struct {
	Runtime string
	Args    []string
	WorkDir string
	Env     []string
}

// Process is the kill capability of a spawned child
type Process interface {
	// Pid returns the OS process identifier
	Pid() int

	// Kill requests immediate termination. It does not wait for exit.
	Kill() error
}

// Spawner creates OS processes
type Spawner interface {
	Spawn(ctx context.Context, cmd Command) (Process, error)
}

// SpawnerFunc adapts a function to the Spawner interface
type SpawnerFunc func(ctx context.Context, cmd Command) (Process, error)

// Spawn calls f(ctx, cmd)
func (f SpawnerFunc) Spawn(ctx context.Context, cmd Command) (Process, error) {
	return f(ctx, cmd)
}

// ProcessTracer defines the tracing interface needed by the spawner
type ProcessTracer interface {
	InjectProcessEnv(ctx context.Context, env []string) []string
}
