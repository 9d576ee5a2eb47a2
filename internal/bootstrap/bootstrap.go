// Package bootstrap provides application lifecycle helpers.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// App manages application lifecycle with graceful shutdown support.
type App struct {
	mu              sync.Mutex
	hooks           []namedHook
	shutdownTimeout time.Duration
}

type namedHook struct {
	name string
	fn   func(ctx context.Context) error
}

// New creates a new App. A zero shutdownTimeout lets hooks run without a deadline.
func New(shutdownTimeout time.Duration) *App {
	return &App{shutdownTimeout: shutdownTimeout}
}

// AddShutdownHook registers a function to call during graceful shutdown.
// Hooks run in reverse order (LIFO). Thread-safe.
func (a *App) AddShutdownHook(name string, fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, namedHook{name: name, fn: fn})
}

// Run sets up signal handling and executes the run function.
// On SIGINT or SIGTERM, it calls registered shutdown hooks in LIFO order.
// If run returns an error before a signal, that error is returned.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		if err := run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		return a.shutdownWithTimeout()
	case err := <-errCh:
		// run may observe the signal and return before the select does
		if err == nil && ctx.Err() != nil {
			return a.shutdownWithTimeout()
		}
		return err
	}
}

func (a *App) shutdownWithTimeout() error {
	ctx := context.Background()
	if a.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.shutdownTimeout)
		defer cancel()
	}
	return a.shutdown(ctx)
}

func (a *App) shutdown(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	var errs []error
	for i := len(a.hooks) - 1; i >= 0; i-- {
		hook := a.hooks[i]
		slog.Default().Info("running shutdown hook", "hook", hook.name)
		if err := hook.fn(ctx); err != nil {
			slog.Default().Error("shutdown hook failed", "hook", hook.name, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
