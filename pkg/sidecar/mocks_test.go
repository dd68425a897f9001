package sidecar

import (
	"context"
	"sync"
)

type fakeProcess struct {
	mu      sync.Mutex
	pid     int
	kills   int
	killErr error
}

func (p *fakeProcess) Pid() int { return p.pid }

func (p *fakeProcess) Kill() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kills++
	return p.killErr
}

func (p *fakeProcess) Kills() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.kills
}

type fakeSpawner struct {
	mu    sync.Mutex
	calls []Command
	proc  *fakeProcess
	err   error
}

func (s *fakeSpawner) Spawn(ctx context.Context, cmd Command) (Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, cmd)
	if s.err != nil {
		return nil, s.err
	}
	return s.proc, nil
}

func (s *fakeSpawner) Calls() []Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Command(nil), s.calls...)
}

type mockRecorder struct {
	spawns  []string
	running []bool
	stops   []error
}

func (r *mockRecorder) RecordSpawn(outcome string)       { r.spawns = append(r.spawns, outcome) }
func (r *mockRecorder) UpdateProcessStatus(running bool) { r.running = append(r.running, running) }
func (r *mockRecorder) RecordStop(err error)             { r.stops = append(r.stops, err) }
