// Package mi parses a single line of GDB Machine Interface (MI) output into
// a tagged record with a structured payload. The parser is stateless
// between lines: GDB/MI never spans a record across multiple lines, so each
// call to ParseLine starts fresh and a malformed line never desynchronises
// the ones that follow it.
package mi

import "fmt"

// RecordKind tags the variant a Record holds.
type RecordKind int

const (
	RecordResult RecordKind = iota
	RecordExecAsync
	RecordStatusAsync
	RecordNotifyAsync
	RecordStream
	RecordPrompt
)

func (k RecordKind) String() string {
	switch k {
	case RecordResult:
		return "result"
	case RecordExecAsync:
		return "exec-async"
	case RecordStatusAsync:
		return "status-async"
	case RecordNotifyAsync:
		return "notify-async"
	case RecordStream:
		return "stream"
	case RecordPrompt:
		return "prompt"
	default:
		return "unknown"
	}
}

// ResultClass is the class of a Result record (the `^` sigil).
type ResultClass int

const (
	ClassDone ResultClass = iota
	ClassRunning
	ClassConnected
	ClassError
	ClassExit
)

func (c ResultClass) String() string {
	switch c {
	case ClassDone:
		return "done"
	case ClassRunning:
		return "running"
	case ClassConnected:
		return "connected"
	case ClassError:
		return "error"
	case ClassExit:
		return "exit"
	default:
		return "error"
	}
}

func resultClassFrom(s string) ResultClass {
	switch s {
	case "done":
		return ClassDone
	case "running":
		return ClassRunning
	case "connected":
		return ClassConnected
	case "error":
		return ClassError
	case "exit":
		return ClassExit
	default:
		return ClassError
	}
}

// StreamKind distinguishes the three stream-sigil records.
type StreamKind int

const (
	StreamConsole StreamKind = iota
	StreamTarget
	StreamLog
)

func streamKindFor(sigil byte) StreamKind {
	switch sigil {
	case '@':
		return StreamTarget
	case '&':
		return StreamLog
	default:
		return StreamConsole
	}
}

func streamSigilFor(kind StreamKind) byte {
	switch kind {
	case StreamTarget:
		return '@'
	case StreamLog:
		return '&'
	default:
		return '~'
	}
}

// ValueKind tags the variant a Value holds.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueTuple
	ValueList
)

// Value is a node in an MI payload tree: a quoted string, an ordered keyed
// tuple, or an ordered list. Lists that contain `name=value` results (rather
// than bare values) collapse each such entry into a single-entry Tuple, per
// the parser's one-identifier lookahead rule — this mirrors real GDB output,
// where list elements of a `frame=...` shape are always results in practice.
type Value struct {
	Kind  ValueKind
	Str   string
	Tuple []KeyValue
	List  []Value
}

// KeyValue is one entry of an ordered tuple.
type KeyValue struct {
	Key   string
	Value Value
}

// Record is a single parsed line of MI output.
type Record struct {
	Kind        RecordKind
	Token       *uint64
	Class       string // raw class identifier for Result/ExecAsync/StatusAsync/NotifyAsync
	ResultClass ResultClass
	Payload     []KeyValue
	StreamKind  StreamKind
	Text        string // stream text, already C-unescaped (or passed through raw if unquoted)
}

// Field looks up a top-level payload key.
func (r Record) Field(name string) (Value, bool) {
	for _, kv := range r.Payload {
		if kv.Key == name {
			return kv.Value, true
		}
	}
	return Value{}, false
}

// ErrorMessage returns the `msg` field of a `^error` record.
func (r Record) ErrorMessage() (string, bool) {
	v, ok := r.Field("msg")
	if !ok || v.Kind != ValueString {
		return "", false
	}
	return v.Str, true
}

// ParseError reports a failure to parse a single line. It never carries
// state from one line to the next.
type ParseError struct {
	Line string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mi: %s: %q", e.Msg, e.Line)
}
