package audit

import (
	"context"
	"testing"
	"time"

	"github.com/zachpodbielniak/gdb-mcp/internal/gdbsession"
	"github.com/zachpodbielniak/gdb-mcp/internal/registry"
)

func TestDescribeEventStateChanged(t *testing.T) {
	kind, detail := describeEvent(gdbsession.Event{
		Kind:     gdbsession.EventStateChanged,
		OldState: gdbsession.StateStarting,
		NewState: gdbsession.StateReady,
	})
	if kind != "state-changed" {
		t.Fatalf("kind = %q, want state-changed", kind)
	}
	if detail != "starting -> ready" {
		t.Fatalf("detail = %q", detail)
	}
}

func TestDescribeEventStopped(t *testing.T) {
	kind, detail := describeEvent(gdbsession.Event{
		Kind:       gdbsession.EventStopped,
		StopReason: gdbsession.StopReasonBreakpoint,
	})
	if kind != "stopped" {
		t.Fatalf("kind = %q, want stopped", kind)
	}
	if detail != "reason=breakpoint" {
		t.Fatalf("detail = %q", detail)
	}
}

func TestDescribeEventConsoleOutputIsIgnored(t *testing.T) {
	kind, _ := describeEvent(gdbsession.Event{Kind: gdbsession.EventConsoleOutput, Text: "hi"})
	if kind != "" {
		t.Fatalf("kind = %q, want empty (console output should not be audited)", kind)
	}
}

func TestWatchStopsOnContextCancel(t *testing.T) {
	store := openTestStore(t)
	reg := registry.New("definitely-not-a-real-gdb-binary", time.Second, 0)
	l := NewListener(store, reg)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		l.Watch(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after context cancellation")
	}
}
