// Package lifecycle coordinates named startup and shutdown hooks for the
// long-running subsystems of a process.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrStarted is returned when hooks are registered or started after Start.
var ErrStarted = errors.New("lifecycle already started")

// Hook is a startup or shutdown step. Startup hooks receive the coordinator
// context; shutdown hooks receive a context bounded by the shutdown timeout.
type Hook func(ctx context.Context) error

// Check is the startup result of one named hook.
type Check struct {
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

type hook struct {
	name string
	fn   Hook
}

// Coordinator runs registered hooks concurrently and tracks their outcome.
type Coordinator struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	startup  []hook
	shutdown []hook
	checks   map[string]Check
	started  bool

	ready atomic.Bool
}

// New creates a Coordinator with a cancellable context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
		checks: make(map[string]Check),
	}
}

// Context returns the coordinator's context, cancelled on shutdown.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup registers a named hook that Start runs.
func (c *Coordinator) OnStartup(name string, fn Hook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startup = append(c.startup, hook{name: name, fn: fn})
	c.checks[name] = Check{Name: name}
}

// OnShutdown registers a named hook that Shutdown runs after the
// coordinator context is cancelled.
func (c *Coordinator) OnShutdown(name string, fn Hook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shutdown = append(c.shutdown, hook{name: name, fn: fn})
}

// Start runs every startup hook concurrently and waits for all of them.
// The coordinator is ready only when every hook succeeded; the returned
// error joins the failures by hook name.
func (c *Coordinator) Start() error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return ErrStarted
	}
	c.started = true
	hooks := slices.Clone(c.startup)
	c.mu.Unlock()

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	for _, h := range hooks {
		g.Go(func() error {
			err := h.fn(c.ctx)
			check := Check{Name: h.name, Ready: err == nil}
			if err != nil {
				check.Error = err.Error()
			}

			c.mu.Lock()
			c.checks[h.name] = check
			c.mu.Unlock()

			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", h.name, err))
				mu.Unlock()
			}
			return nil
		})
	}
	g.Wait()

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	c.ready.Store(true)
	return nil
}

// Ready reports whether Start completed without a failed hook.
func (c *Coordinator) Ready() bool {
	return c.ready.Load()
}

// Checks returns the startup status of every registered hook, sorted by name.
func (c *Coordinator) Checks() []Check {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Check, 0, len(c.checks))
	for _, check := range c.checks {
		out = append(out, check)
	}
	slices.SortFunc(out, func(a, b Check) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Shutdown cancels the coordinator context and runs every shutdown hook
// concurrently within timeout. Hook failures are joined with a timeout
// error when the hooks did not finish in time.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.ready.Store(false)
	c.cancel()

	c.mu.Lock()
	hooks := slices.Clone(c.shutdown)
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var (
		mu   sync.Mutex
		errs []error
	)
	done := make(chan struct{})
	go func() {
		var g errgroup.Group
		for _, h := range hooks {
			g.Go(func() error {
				if err := h.fn(ctx); err != nil {
					mu.Lock()
					errs = append(errs, fmt.Errorf("%s: %w", h.name, err))
					mu.Unlock()
				}
				return nil
			})
		}
		g.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		mu.Lock()
		errs = append(errs, fmt.Errorf("shutdown timeout after %v", timeout))
		mu.Unlock()
	}

	mu.Lock()
	defer mu.Unlock()
	return errors.Join(errs...)
}
