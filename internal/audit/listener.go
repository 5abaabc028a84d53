package audit

import (
	"context"
	"fmt"
	"os"

	"github.com/zachpodbielniak/gdb-mcp/internal/gdbsession"
	"github.com/zachpodbielniak/gdb-mcp/internal/registry"
)

// Listener records state transitions as they happen, complementing the
// session-created/command/session-removed rows mcpserver writes inline
// around each tool call. It runs for the lifetime of the process; there is
// nothing to stop explicitly, since its goroutines exit on their own once a
// session terminates.
type Listener struct {
	store *Store
	reg   *registry.Registry
}

// NewListener returns a Listener that records against store.
func NewListener(store *Store, reg *registry.Registry) *Listener {
	return &Listener{store: store, reg: reg}
}

// Watch consumes reg's add/remove notifications until ctx is done, spawning
// one goroutine per live session to mirror its state changes into the
// audit log.
func (l *Listener) Watch(ctx context.Context) {
	regEvents, unsubscribe := l.reg.Subscribe()
	defer unsubscribe()

	for _, sess := range l.reg.List() {
		go l.watchSession(ctx, sess)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-regEvents:
			if !ok {
				return
			}
			if ev.Kind != registry.EventSessionAdded {
				continue
			}
			sess, ok := l.reg.Get(ev.SessionID)
			if !ok {
				continue
			}
			go l.watchSession(ctx, sess)
		}
	}
}

func (l *Listener) watchSession(ctx context.Context, sess *gdbsession.Session) {
	sessEvents, unsubscribe := sess.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sessEvents:
			if !ok {
				return
			}
			kind, detail := describeEvent(ev)
			if kind == "" {
				continue
			}
			if err := l.store.Record(ctx, sess.ID(), kind, detail); err != nil {
				fmt.Fprintf(os.Stderr, "audit: failed to record %s for session %s: %v\n", kind, sess.ID(), err)
			}
			if ev.Kind == gdbsession.EventTerminated {
				return
			}
		}
	}
}

// describeEvent maps a session event to an audit kind/detail pair. Console
// output is intentionally excluded: it is high-volume line noise, not a
// discrete state transition worth auditing.
func describeEvent(ev gdbsession.Event) (kind, detail string) {
	switch ev.Kind {
	case gdbsession.EventStateChanged:
		return "state-changed", fmt.Sprintf("%s -> %s", ev.OldState, ev.NewState)
	case gdbsession.EventStopped:
		return "stopped", fmt.Sprintf("reason=%s", ev.StopReason)
	case gdbsession.EventTerminated:
		return "process-exited", fmt.Sprintf("exitCode=%d", ev.ExitCode)
	default:
		return "", ""
	}
}
