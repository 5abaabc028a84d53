// Package errs defines the error taxonomy shared by every component that
// can fail in a caller-visible way: session lookup, command submission, MI
// parsing, and subprocess management. Every error returned across a package
// boundary in this module carries one of these kinds, so callers can branch
// on Kind instead of matching strings.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies the failure. The zero value is never returned by this
// module's own code; it exists only so a missing Kind is visibly wrong in a
// switch rather than silently aliasing a real kind.
type Kind int

const (
	_ Kind = iota
	SessionNotFound
	SessionNotReady
	SessionLimit
	SpawnFailed
	Timeout
	CommandFailed
	ParseError
	InvalidArgument
	FileNotFound
	AttachFailed
	AlreadyRunning
	NotRunning
	Internal
)

// String returns the human-readable description used in tool replies and
// log lines, matching the wording GDB's own error-code-to-string mapping
// uses.
func (k Kind) String() string {
	switch k {
	case SessionNotFound:
		return "Session not found"
	case SessionNotReady:
		return "Session is not ready"
	case SessionLimit:
		return "Session limit reached"
	case SpawnFailed:
		return "Failed to start GDB"
	case Timeout:
		return "Command timed out"
	case CommandFailed:
		return "GDB command failed"
	case ParseError:
		return "Failed to parse GDB output"
	case InvalidArgument:
		return "Invalid argument"
	case FileNotFound:
		return "File not found"
	case AttachFailed:
		return "Failed to attach to process"
	case AlreadyRunning:
		return "Program is already running"
	case NotRunning:
		return "Program is not running"
	case Internal:
		return "Internal error"
	default:
		return "Unknown error"
	}
}

// Error is a Kind paired with a specific message and an optional
// underlying cause. It implements the standard errors.Unwrap contract so
// callers can use errors.Is/As against sentinel causes (context.DeadlineExceeded,
// os.ErrNotExist, and the like) while still switching on Kind at the top level.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an Error with no formatted message beyond the Kind's own
// description.
func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

// Newf builds an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a Kind to an underlying error, preserving it for Unwrap.
func Wrap(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Message: cause.Error(), Cause: cause}
}

// KindOf extracts the Kind from err if it (or something it wraps) is an
// *Error, defaulting to Internal for anything else — an error that
// reaches an MCP tool boundary without a Kind attached is itself a bug,
// but the caller still deserves a reply rather than a panic.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}
