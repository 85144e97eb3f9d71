package lifecycle_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/nyaysetu/pkg/lifecycle"
)

func ok(context.Context) error { return nil }

func TestReadyAfterStart(t *testing.T) {
	lc := lifecycle.New()
	if lc.Ready() {
		t.Fatal("ready before Start")
	}

	if err := lc.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !lc.Ready() {
		t.Error("not ready after Start")
	}
}

func TestStartRunsEveryHook(t *testing.T) {
	lc := lifecycle.New()

	var count atomic.Int32
	for _, name := range []string{"database", "storage", "cache"} {
		lc.OnStartup(name, func(context.Context) error {
			count.Add(1)
			return nil
		})
	}

	if err := lc.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if got := count.Load(); got != 3 {
		t.Errorf("hooks run = %d, want 3", got)
	}
}

func TestStartFailure(t *testing.T) {
	lc := lifecycle.New()
	boom := errors.New("connection refused")

	lc.OnStartup("storage", ok)
	lc.OnStartup("database", func(context.Context) error { return boom })

	err := lc.Start()
	if !errors.Is(err, boom) {
		t.Fatalf("Start() error = %v, want %v", err, boom)
	}
	if !strings.Contains(err.Error(), "database") {
		t.Errorf("error %q does not name the hook", err)
	}
	if lc.Ready() {
		t.Error("ready after a failed hook")
	}

	want := []lifecycle.Check{
		{Name: "database", Ready: false, Error: "connection refused"},
		{Name: "storage", Ready: true},
	}
	if diff := cmp.Diff(want, lc.Checks()); diff != "" {
		t.Errorf("Checks() mismatch (-want +got):\n%s", diff)
	}
}

func TestChecksBeforeStart(t *testing.T) {
	lc := lifecycle.New()
	lc.OnStartup("database", ok)

	want := []lifecycle.Check{{Name: "database"}}
	if diff := cmp.Diff(want, lc.Checks()); diff != "" {
		t.Errorf("Checks() mismatch (-want +got):\n%s", diff)
	}
}

func TestStartTwice(t *testing.T) {
	lc := lifecycle.New()
	if err := lc.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := lc.Start(); !errors.Is(err, lifecycle.ErrStarted) {
		t.Errorf("second Start() error = %v, want ErrStarted", err)
	}
}

func TestShutdownRunsHooksAfterCancel(t *testing.T) {
	lc := lifecycle.New()

	var cancelled atomic.Bool
	lc.OnShutdown("database", func(context.Context) error {
		cancelled.Store(lc.Context().Err() != nil)
		return nil
	})

	lc.Start()
	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if !cancelled.Load() {
		t.Error("shutdown hook ran before the context was cancelled")
	}
	if lc.Ready() {
		t.Error("ready after Shutdown")
	}
}

func TestShutdownJoinsErrors(t *testing.T) {
	lc := lifecycle.New()
	closeErr := errors.New("close failed")

	lc.OnShutdown("http", ok)
	lc.OnShutdown("database", func(context.Context) error { return closeErr })

	err := lc.Shutdown(time.Second)
	if !errors.Is(err, closeErr) {
		t.Fatalf("Shutdown() error = %v, want %v", err, closeErr)
	}
}

func TestShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()

	lc.OnShutdown("slow", func(context.Context) error {
		time.Sleep(500 * time.Millisecond)
		return nil
	})

	err := lc.Shutdown(50 * time.Millisecond)
	if err == nil || !strings.Contains(err.Error(), "timeout") {
		t.Errorf("Shutdown() error = %v, want timeout", err)
	}
}

func TestShutdownContextBounded(t *testing.T) {
	lc := lifecycle.New()

	var deadline atomic.Bool
	lc.OnShutdown("http", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		deadline.Store(ok)
		return nil
	})

	lc.Shutdown(time.Second)
	if !deadline.Load() {
		t.Error("shutdown hook context has no deadline")
	}
}
