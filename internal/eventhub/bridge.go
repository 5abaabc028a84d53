package eventhub

import (
	"context"

	"github.com/zachpodbielniak/gdb-mcp/internal/gdbsession"
	"github.com/zachpodbielniak/gdb-mcp/internal/redact"
	"github.com/zachpodbielniak/gdb-mcp/internal/registry"
)

// Bridge forwards every event a registry's sessions emit into a Hub, so the
// diagnostics server can expose them over SSE without the registry or
// gdbsession knowing diagnostics exist.
type Bridge struct {
	hub    *Hub
	reg    *registry.Registry
	filter *redact.Filter
}

// NewBridge returns a Bridge publishing reg's session events into hub.
// filter redacts secret values out of each event's Text before it is
// published; a nil filter disables redaction.
func NewBridge(hub *Hub, reg *registry.Registry, filter *redact.Filter) *Bridge {
	return &Bridge{hub: hub, reg: reg, filter: filter}
}

// Watch consumes reg's add notifications until ctx is done, spawning one
// goroutine per live session to mirror its events into the hub.
func (b *Bridge) Watch(ctx context.Context) {
	regEvents, unsubscribe := b.reg.Subscribe()
	defer unsubscribe()

	for _, sess := range b.reg.List() {
		go b.watchSession(ctx, sess)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-regEvents:
			if !ok {
				return
			}
			switch ev.Kind {
			case registry.EventSessionAdded:
				if sess, ok := b.reg.Get(ev.SessionID); ok {
					go b.watchSession(ctx, sess)
				}
			case registry.EventSessionRemoved:
				b.hub.Close(ev.SessionID)
			}
		}
	}
}

func (b *Bridge) watchSession(ctx context.Context, sess *gdbsession.Session) {
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
			ev.Text = b.filter.Redact(ev.Text)
			b.hub.Publish(sess.ID(), ev)
			if ev.Kind == gdbsession.EventTerminated {
				return
			}
		}
	}
}
