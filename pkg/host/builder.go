package host

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
)

// SetupFunc runs once before the host starts handling events
type SetupFunc func(ctx context.Context, app *App) error

// WindowEventFunc handles a window event
type WindowEventFunc func(ctx context.Context, app *App, ev WindowEvent)

// Builder assembles and runs a host session
type Builder struct {
	locator  ResourceLocator
	logger   *slog.Logger
	setup    []SetupFunc
	handlers []WindowEventFunc
	signals  []os.Signal
	events   chan WindowEvent
}

// NewBuilder creates a builder. By default SIGINT and SIGTERM close the session.
func NewBuilder(locator ResourceLocator, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	if locator == nil {
		locator = ExecutableLocator{}
	}

	return &Builder{
		locator: locator,
		logger:  logger,
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		events:  make(chan WindowEvent, 16),
	}
}

// Setup adds a setup hook. Hooks run in registration order.
func (b *Builder) Setup(fn SetupFunc) *Builder {
	b.setup = append(b.setup, fn)
	return b
}

// OnWindowEvent adds a window event handler
func (b *Builder) OnWindowEvent(fn WindowEventFunc) *Builder {
	b.handlers = append(b.handlers, fn)
	return b
}

// WithSignals replaces the OS signals that request close. No arguments
// disables signal handling.
func (b *Builder) WithSignals(sigs ...os.Signal) *Builder {
	b.signals = sigs
	return b
}

// Emit queues a window event. It returns false if the queue is full.
func (b *Builder) Emit(ev WindowEvent) bool {
	select {
	case b.events <- ev:
		return true
	default:
		return false
	}
}

// Run executes the setup hooks, then dispatches window events until the
// session closes. Exactly one CloseRequested is dispatched per Run, whether
// it comes from Emit, an OS signal, ctx cancellation or a failed setup hook.
// Signal handling is installed before setup so state registered by an
// earlier hook is always closed.
func (b *Builder) Run(ctx context.Context) error {
	sessionID := uuid.NewString()
	logger := b.logger.With("session_id", sessionID)
	app := newApp(b.locator, logger, sessionID)

	sigCtx := ctx
	if len(b.signals) > 0 {
		var stop context.CancelFunc
		sigCtx, stop = signal.NotifyContext(ctx, b.signals...)
		defer stop()
	}

	for _, fn := range b.setup {
		if err := fn(ctx, app); err != nil {
			logger.Error("Host setup failed", "error", err)
			b.dispatch(context.WithoutCancel(ctx), app, CloseRequested{Reason: "setup failed"})
			return fmt.Errorf("setup failed: %w", err)
		}
	}

	if sigCtx.Err() != nil {
		b.closeOnDone(ctx, app, logger)
		return nil
	}

	logger.Info("Host running")

	for {
		select {
		case <-sigCtx.Done():
			b.closeOnDone(ctx, app, logger)
			return nil

		case ev := <-b.events:
			b.dispatch(ctx, app, ev)
			if closeEv, ok := ev.(CloseRequested); ok {
				logger.Info("Host stopped", "reason", closeEv.Reason)
				return nil
			}
		}
	}
}

// closeOnDone dispatches CloseRequested after a signal or ctx cancellation.
func (b *Builder) closeOnDone(ctx context.Context, app *App, logger *slog.Logger) {
	reason := "signal"
	if ctx.Err() != nil {
		reason = "context"
	}
	b.dispatch(context.WithoutCancel(ctx), app, CloseRequested{Reason: reason})
	logger.Info("Host stopped", "reason", reason)
}

func (b *Builder) dispatch(ctx context.Context, app *App, ev WindowEvent) {
	for _, fn := range b.handlers {
		fn(ctx, app, ev)
	}
}
