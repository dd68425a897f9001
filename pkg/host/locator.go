package host

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultResourceDirName is the resource directory next to the executable
const DefaultResourceDirName = "resources"

// ErrResourceDirNotFound indicates the installed resource directory is missing
var ErrResourceDirNotFound = errors.New("resource directory not found")

// ResourceLocator returns the absolute path of the installed resources
type ResourceLocator interface {
	ResourceDir() (string, error)
}

// StaticLocator always returns the same directory
type StaticLocator string

// ResourceDir returns the absolute form of l after checking it is a directory
func (l StaticLocator) ResourceDir() (string, error) {
	if l == "" {
		return "", fmt.Errorf("%w: empty path", ErrResourceDirNotFound)
	}
	return checkDir(string(l))
}

// ExecutableLocator resolves resources relative to the running executable
type ExecutableLocator struct {
	// DirName is joined to the executable's directory (default "resources")
	DirName string

	executable func() (string, error)
}

// ResourceDir returns <dir of executable>/<DirName>
func (l ExecutableLocator) ResourceDir() (string, error) {
	executable := l.executable
	if executable == nil {
		executable = os.Executable
	}

	exe, err := executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	name := l.DirName
	if name == "" {
		name = DefaultResourceDirName
	}

	return checkDir(filepath.Join(filepath.Dir(exe), name))
}

func checkDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrResourceDirNotFound, abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrResourceDirNotFound, abs)
	}

	return abs, nil
}
