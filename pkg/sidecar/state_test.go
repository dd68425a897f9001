package sidecar

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_TakeEmptiesSlot(t *testing.T) {
	s := NewState()
	assert.Equal(t, PhaseNotStarted, s.Phase())
	assert.Nil(t, s.Take())

	require.True(t, s.store(&fakeProcess{pid: 42}))
	assert.True(t, s.Held())
	assert.Equal(t, PhaseRunning, s.Phase())
	pid, ok := s.Pid()
	assert.True(t, ok)
	assert.Equal(t, 42, pid)

	h := s.Take()
	require.NotNil(t, h)
	assert.Equal(t, 42, h.Pid())
	assert.False(t, s.Held())
	assert.Equal(t, PhaseStopped, s.Phase())

	assert.Nil(t, s.Take())
	_, ok = s.Pid()
	assert.False(t, ok)
}

func TestState_NoTransitionBackToRunning(t *testing.T) {
	s := NewState()
	s.markNeverStarted()
	assert.Equal(t, PhaseNeverStarted, s.Phase())
	assert.False(t, s.store(&fakeProcess{pid: 1}))
	assert.False(t, s.Held())

	s = NewState()
	require.True(t, s.store(&fakeProcess{pid: 1}))
	s.Take()
	assert.False(t, s.store(&fakeProcess{pid: 2}))
	s.markNeverStarted()
	assert.Equal(t, PhaseStopped, s.Phase())
}

func TestState_ConcurrentTakeYieldsOneHandle(t *testing.T) {
	s := NewState()
	require.True(t, s.store(&fakeProcess{pid: 7}))

	var wg sync.WaitGroup
	var mu sync.Mutex
	taken := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Take() != nil {
				mu.Lock()
				taken++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, taken)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "not_started", PhaseNotStarted.String())
	assert.Equal(t, "running", PhaseRunning.String())
	assert.Equal(t, "never_started", PhaseNeverStarted.String())
	assert.Equal(t, "stopped", PhaseStopped.String())
	assert.Equal(t, "unknown", Phase(99).String())
}
