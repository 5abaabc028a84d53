// Package eventhub fans out structured session events (state changes, stop
// reasons, console output, termination) to diagnostics subscribers. It is
// the same circular-buffer-plus-fan-out shape as internal/hub, adapted to
// key streams by session ID and to carry gdbsession.Event values instead of
// raw output lines.
package eventhub

import (
	"sync"

	"github.com/zachpodbielniak/gdb-mcp/internal/gdbsession"
)

const defaultBufferCap = 256

// stream holds the state for a single session's event stream.
type stream struct {
	buf     []gdbsession.Event
	pos     int
	clients map[chan gdbsession.Event]struct{}
	done    bool
}

func (s *stream) lines() []gdbsession.Event {
	n := len(s.buf)
	if n == 0 || s.pos == 0 {
		return s.buf
	}
	out := make([]gdbsession.Event, n)
	copy(out, s.buf[s.pos:])
	copy(out[n-s.pos:], s.buf[:s.pos])
	return out
}

func (s *stream) append(ev gdbsession.Event) {
	if len(s.buf) < cap(s.buf) {
		s.buf = append(s.buf, ev)
	} else {
		s.buf[s.pos] = ev
	}
	s.pos = (s.pos + 1) % cap(s.buf)
}

// Hub fans out session events to multiple diagnostics subscribers,
// buffering the last defaultBufferCap events per session so a late-joining
// client still sees recent history.
type Hub struct {
	mu      sync.Mutex
	streams map[string]*stream
}

// New creates a Hub ready for use.
func New() *Hub {
	return &Hub{streams: make(map[string]*stream)}
}

func (h *Hub) getOrCreate(sessionID string) *stream {
	s, ok := h.streams[sessionID]
	if !ok {
		s = &stream{
			buf:     make([]gdbsession.Event, 0, defaultBufferCap),
			clients: make(map[chan gdbsession.Event]struct{}),
		}
		h.streams[sessionID] = s
	}
	return s
}

// Publish appends ev to sessionID's buffer and forwards it to every current
// subscriber. The send is non-blocking: a slow consumer drops events rather
// than stalling the publisher.
func (h *Hub) Publish(sessionID string, ev gdbsession.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := h.getOrCreate(sessionID)
	if s.done {
		return
	}
	s.append(ev)

	for ch := range s.clients {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe returns a channel of future events for sessionID, replaying any
// buffered history first, plus an unsubscribe function.
func (h *Hub) Subscribe(sessionID string) (<-chan gdbsession.Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := h.getOrCreate(sessionID)
	ch := make(chan gdbsession.Event, defaultBufferCap+16)

	for _, ev := range s.lines() {
		ch <- ev
	}

	if s.done {
		close(ch)
		return ch, func() {}
	}

	s.clients[ch] = struct{}{}
	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(s.clients, ch)
	}
	return ch, unsubscribe
}

// Close marks sessionID's stream done and closes every subscriber channel.
// Later Publish calls for this session are no-ops.
func (h *Hub) Close(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := h.getOrCreate(sessionID)
	s.done = true
	for ch := range s.clients {
		close(ch)
	}
	s.clients = nil
}

// Remove deletes sessionID's stream entirely, closing any remaining
// subscribers first.
func (h *Hub) Remove(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.streams[sessionID]
	if !ok {
		return
	}
	for ch := range s.clients {
		close(ch)
	}
	delete(h.streams, sessionID)
}
