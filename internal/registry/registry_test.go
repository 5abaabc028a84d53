package registry

import (
	"context"
	"testing"
	"time"
)

// These tests exercise Registry bookkeeping against whatever `gdb` resolves
// to on PATH only indirectly: Create's call to Session.Start will fail fast
// with SpawnFailed when there is no such binary, which is exactly the path
// these tests want to cover (limit enforcement, removal, and snapshotting
// should all work whether or not Start itself succeeds). Tests that need a
// session to actually reach Ready belong in gdbsession, where the process
// spawn is faked.
func TestRegistryFailedCreateLeavesSessionLimitFree(t *testing.T) {
	r := New("definitely-not-a-real-gdb-binary", 50*time.Millisecond, 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// The first Create attempt fails at Start (no such binary) without
	// ever registering a session, so the limit should still read as free
	// afterward.
	if _, err := r.Create(ctx, "", "", 0); err == nil {
		t.Fatal("expected Create to fail against a nonexistent gdb binary")
	}
	if r.Count() != 0 {
		t.Fatalf("Count() = %d, want 0 after a failed Create", r.Count())
	}
}

func TestRegistryGetUnknownID(t *testing.T) {
	r := New("gdb", time.Second, 0)
	if _, ok := r.Get("nope"); ok {
		t.Fatal("Get should report false for an unknown ID")
	}
}

func TestRegistryRemoveUnknownIDIsNoop(t *testing.T) {
	r := New("gdb", time.Second, 0)
	r.Remove("nope") // must not panic
	if r.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", r.Count())
	}
}

func TestRegistryListSnapshot(t *testing.T) {
	r := New("gdb", time.Second, 0)
	if got := r.List(); len(got) != 0 {
		t.Fatalf("List() = %v, want empty", got)
	}
}

func TestRegistryNextSessionIDIsUnique(t *testing.T) {
	r := New("gdb", time.Second, 0)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := r.nextSessionID()
		if seen[id] {
			t.Fatalf("nextSessionID produced a duplicate: %q", id)
		}
		seen[id] = true
	}
}

func TestRegistryEventsAreNonBlocking(t *testing.T) {
	r := New("gdb", time.Second, 0)
	// No subscriber is draining r's subscriber channels; emitting past
	// their buffer must not block the caller.
	for i := 0; i < 1000; i++ {
		r.emit(Event{Kind: EventSessionAdded, SessionID: "x"})
	}
}

func TestRegistrySubscribeFanOutDeliversToAllSubscribers(t *testing.T) {
	r := New("gdb", time.Second, 0)
	chA, unsubA := r.Subscribe()
	defer unsubA()
	chB, unsubB := r.Subscribe()
	defer unsubB()

	r.emit(Event{Kind: EventSessionAdded, SessionID: "x"})

	for name, ch := range map[string]<-chan Event{"A": chA, "B": chB} {
		select {
		case ev := <-ch:
			if ev.SessionID != "x" {
				t.Fatalf("subscriber %s got SessionID %q, want %q", name, ev.SessionID, "x")
			}
		default:
			t.Fatalf("subscriber %s did not receive the emitted event", name)
		}
	}
}

func TestRegistryUnsubscribeStopsDelivery(t *testing.T) {
	r := New("gdb", time.Second, 0)
	ch, unsubscribe := r.Subscribe()
	unsubscribe()

	r.emit(Event{Kind: EventSessionAdded, SessionID: "x"})

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed after unsubscribe")
	}
}
