package sidecar

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// ExecSpawner implements Spawner with os/exec.
//
// The child inherits the host's stdout and stderr unless overridden and is
// placed in its own process group so terminal signals aimed at the host do
// not reach it directly. The spawner never calls Wait; the child runs
// independently until it exits or is killed.
type ExecSpawner struct {
	Stdout io.Writer
	Stderr io.Writer

	logger  *slog.Logger
	tracing ProcessTracer
}

// NewExecSpawner creates a spawner that inherits the host's standard streams
func NewExecSpawner(logger *slog.Logger, tracing ProcessTracer) *ExecSpawner {
	if logger == nil {
		logger = slog.Default()
	}

	return &ExecSpawner{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		logger:  logger,
		tracing: tracing,
	}
}

// Spawn starts the command and returns as soon as the OS has created the process
func (s *ExecSpawner) Spawn(ctx context.Context, c Command) (Process, error) {
	if c.Runtime == "" {
		return nil, fmt.Errorf("runtime cannot be empty")
	}

	// exec.CommandContext would kill the child when ctx ends; the sidecar
	// must outlive the startup call.
	cmd := exec.Command(c.Runtime, c.Args...)
	cmd.Dir = c.WorkDir
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	env := os.Environ()
	if len(c.Env) > 0 {
		env = append(env, c.Env...)
	}
	if s.tracing != nil {
		env = s.tracing.InjectProcessEnv(ctx, env)
	}
	cmd.Env = env

	setSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start process: %w", err)
	}

	s.logger.Debug("Process created", "pid", cmd.Process.Pid, "runtime", c.Runtime, "dir", c.WorkDir)

	return &execProcess{proc: cmd.Process}, nil
}

type execProcess struct {
	proc *os.Process
}

func (p *execProcess) Pid() int {
	return p.proc.Pid
}

func (p *execProcess) Kill() error {
	return p.proc.Kill()
}
