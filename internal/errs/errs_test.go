package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		SessionNotFound: "Session not found",
		SessionNotReady: "Session is not ready",
		SessionLimit:    "Session limit reached",
		SpawnFailed:     "Failed to start GDB",
		Timeout:         "Command timed out",
		CommandFailed:   "GDB command failed",
		ParseError:      "Failed to parse GDB output",
		InvalidArgument: "Invalid argument",
		FileNotFound:    "File not found",
		AttachFailed:    "Failed to attach to process",
		AlreadyRunning:  "Program is already running",
		NotRunning:      "Program is not running",
		Internal:        "Internal error",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestNewfMessage(t *testing.T) {
	err := Newf(Timeout, "command %q exceeded %dms", "continue", 5000)
	if err.Kind != Timeout {
		t.Fatalf("Kind = %v, want Timeout", err.Kind)
	}
	want := `Command timed out: command "continue" exceeded 5000ms`
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(SpawnFailed, cause)
	if !errors.Is(err, cause) {
		t.Fatal("Wrap should preserve cause for errors.Is")
	}
	if KindOf(err) != SpawnFailed {
		t.Fatalf("KindOf = %v, want SpawnFailed", KindOf(err))
	}
}

func TestKindOfWrappedError(t *testing.T) {
	inner := New(SessionNotFound)
	outer := fmt.Errorf("lookup session: %w", inner)
	if KindOf(outer) != SessionNotFound {
		t.Fatalf("KindOf(wrapped) = %v, want SessionNotFound", KindOf(outer))
	}
}

func TestKindOfDefaultsToInternal(t *testing.T) {
	if KindOf(errors.New("plain")) != Internal {
		t.Fatal("KindOf(plain error) should default to Internal")
	}
}
