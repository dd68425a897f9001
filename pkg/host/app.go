package host

import (
	"log/slog"
	"reflect"
	"sync"
)

// App is the handle passed to setup and event hooks
type App struct {
	locator   ResourceLocator
	logger    *slog.Logger
	sessionID string

	mu      sync.RWMutex
	managed map[reflect.Type]any
}

func newApp(locator ResourceLocator, logger *slog.Logger, sessionID string) *App {
	return &App{
		locator:   locator,
		logger:    logger,
		sessionID: sessionID,
		managed:   make(map[reflect.Type]any),
	}
}

// ResourceDir resolves the installed resource root
func (a *App) ResourceDir() (string, error) {
	return a.locator.ResourceDir()
}

// SessionID identifies this run of the host
func (a *App) SessionID() string {
	return a.sessionID
}

// Logger returns the session-scoped logger
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Manage registers v for later retrieval by its dynamic type.
// It returns false and keeps the existing value if that type is already managed.
func (a *App) Manage(v any) bool {
	t := reflect.TypeOf(v)
	if t == nil {
		return false
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.managed[t]; exists {
		return false
	}
	a.managed[t] = v
	return true
}

// StateOf retrieves a value registered with Manage
func StateOf[T any](a *App) (T, bool) {
	var zero T

	a.mu.RLock()
	defer a.mu.RUnlock()

	v, ok := a.managed[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}
