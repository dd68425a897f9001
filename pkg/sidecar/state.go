package sidecar

import (
	"sync"
)

// Phase is the lifecycle position of the supervised process
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseNeverStarted
	PhaseStopped
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhaseNeverStarted:
		return "never_started"
	case PhaseStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Handle is a live sidecar process owned by a State
type Handle struct {
	pid  int
	proc Process
}

// Pid returns the OS process identifier
func (h *Handle) Pid() int {
	return h.pid
}

// State holds the optional sidecar handle for one host session.
// The zero value is an empty state in PhaseNotStarted.
type State struct {
	mu     sync.Mutex
	handle *Handle
	phase  Phase
}

// NewState returns an empty state
func NewState() *State {
	return &State{}
}

// Take removes and returns the stored handle, or nil if the slot is empty.
// After the first successful take the slot stays empty.
func (s *State) Take() *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.handle
	s.handle = nil
	if h != nil {
		s.phase = PhaseStopped
	}
	return h
}

// Held reports whether a handle is currently stored
func (s *State) Held() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle != nil
}

// Pid returns the stored process identifier, if any
func (s *State) Pid() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle == nil {
		return 0, false
	}
	return s.handle.pid, true
}

// Phase returns the current lifecycle phase
func (s *State) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// store records a freshly spawned process. Only valid from PhaseNotStarted.
func (s *State) store(proc Process) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseNotStarted {
		return false
	}
	s.handle = &Handle{pid: proc.Pid(), proc: proc}
	s.phase = PhaseRunning
	return true
}

// markNeverStarted moves an unused state to its terminal empty phase.
func (s *State) markNeverStarted() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseNotStarted {
		s.phase = PhaseNeverStarted
	}
}
