package audit

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/zachpodbielniak/gdb-mcp/internal/redact"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.db")
	store, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndSessionHistoryRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Record(ctx, "s1", "session-created", "gdbPath=gdb workingDir=(current)"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Record(ctx, "s1", "command", "break main"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Record(ctx, "s2", "session-created", "gdbPath=gdb workingDir=(current)"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := store.SessionHistory(ctx, "s1", 100)
	if err != nil {
		t.Fatalf("SessionHistory: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Kind != "session-created" || entries[1].Kind != "command" {
		t.Fatalf("entries out of order: %+v", entries)
	}
	if entries[1].Detail != "break main" {
		t.Fatalf("entries[1].Detail = %q, want %q", entries[1].Detail, "break main")
	}
}

func TestSessionHistoryUnknownSessionIsEmpty(t *testing.T) {
	store := openTestStore(t)
	entries, err := store.SessionHistory(context.Background(), "nope", 100)
	if err != nil {
		t.Fatalf("SessionHistory: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("len(entries) = %d, want 0", len(entries))
	}
}

func TestRecordRedactsSecretsBeforeWriting(t *testing.T) {
	t.Setenv("GDB_MCP_SECRET_DB_PASS", "hunter2pass")
	path := filepath.Join(t.TempDir(), "audit.db")
	store, err := Open(path, redact.New())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	if err := store.Record(ctx, "s1", "command", `print "pass=hunter2pass"`); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := store.SessionHistory(ctx, "s1", 10)
	if err != nil {
		t.Fatalf("SessionHistory: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Detail == `print "pass=hunter2pass"` {
		t.Fatalf("expected secret to be redacted, got: %s", entries[0].Detail)
	}
}

func TestSessionHistoryRespectsLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := store.Record(ctx, "s1", "command", "step"); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := store.SessionHistory(ctx, "s1", 2)
	if err != nil {
		t.Fatalf("SessionHistory: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
}
