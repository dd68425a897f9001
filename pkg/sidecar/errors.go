package sidecar

import (
	"errors"
	"fmt"
)

// Sentinel errors for sidecar supervision
var (
	// ErrResourceRoot indicates the host resource root could not be used
	ErrResourceRoot = errors.New("resource root unavailable")

	// ErrSpawn indicates the sidecar process could not be started
	ErrSpawn = errors.New("sidecar spawn failed")
)

// ResourceRootError describes why a resource root was rejected
type ResourceRootError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ResourceRootError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resource root %q: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("resource root %q: %s", e.Path, e.Reason)
}

func (e *ResourceRootError) Unwrap() error {
	return e.Err
}

func (e *ResourceRootError) Is(target error) bool {
	return target == ErrResourceRoot
}

// SpawnError wraps the OS error returned when launching the runtime
type SpawnError struct {
	Runtime string
	Entry   string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn %s %s: %v", e.Runtime, e.Entry, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

func (e *SpawnError) Is(target error) bool {
	return target == ErrSpawn
}

// IsResourceRootError checks if the error is a configuration error about the resource root
func IsResourceRootError(err error) bool {
	return errors.Is(err, ErrResourceRoot)
}

// IsSpawnError checks if the error came from launching the sidecar
func IsSpawnError(err error) bool {
	return errors.Is(err, ErrSpawn)
}
