// Package registry tracks the live set of GDB sessions a server is
// managing: creation, lookup, removal, and a coordinated shutdown of every
// session at once.
package registry

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zachpodbielniak/gdb-mcp/internal/errs"
	"github.com/zachpodbielniak/gdb-mcp/internal/gdbsession"
)

// EventKind tags a Registry notification.
type EventKind int

const (
	EventSessionAdded EventKind = iota
	EventSessionRemoved
)

// Event is emitted to every subscriber whenever a session is added to or
// removed from the registry, always from outside the registry's internal
// lock so a subscriber can safely call back into the registry (Get,
// List, ...) without deadlocking.
type Event struct {
	Kind      EventKind
	SessionID string
}

// Registry owns the map of live sessions. The zero value is not usable;
// construct one with New.
type Registry struct {
	defaultGdbPath string
	defaultTimeout time.Duration
	maxSessions    int

	mu       sync.Mutex
	sessions map[string]*gdbsession.Session
	counter  uint64

	eventsMu sync.Mutex
	subs     map[chan Event]struct{}
}

// New builds an empty Registry. maxSessions <= 0 means unlimited.
func New(defaultGdbPath string, defaultTimeout time.Duration, maxSessions int) *Registry {
	return &Registry{
		defaultGdbPath: defaultGdbPath,
		defaultTimeout: defaultTimeout,
		maxSessions:    maxSessions,
		sessions:       make(map[string]*gdbsession.Session),
		subs:           make(map[chan Event]struct{}),
	}
}

// Subscribe registers a new channel that receives every add/remove
// notification Registry emits from this point on, independent of every
// other subscriber — one consumer reading slowly, or not at all, never
// steals events from another. Call the returned function to unsubscribe
// and release the channel; failing to do so leaks it for the life of the
// Registry.
func (r *Registry) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 64)

	r.eventsMu.Lock()
	r.subs[ch] = struct{}{}
	r.eventsMu.Unlock()

	unsubscribe := func() {
		r.eventsMu.Lock()
		if _, ok := r.subs[ch]; ok {
			delete(r.subs, ch)
			close(ch)
		}
		r.eventsMu.Unlock()
	}
	return ch, unsubscribe
}

func (r *Registry) emit(ev Event) {
	r.eventsMu.Lock()
	defer r.eventsMu.Unlock()
	for ch := range r.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (r *Registry) nextSessionID() string {
	n := atomic.AddUint64(&r.counter, 1)
	return fmt.Sprintf("%d-%d", time.Now().UnixMicro(), n)
}

// Create spawns a new GDB session and registers it. gdbPath/timeout of
// zero value fall back to the registry's defaults. The session is started
// before Create returns, so a caller that gets a nil error can submit
// commands immediately.
func (r *Registry) Create(ctx context.Context, gdbPath, workingDir string, timeout time.Duration) (*gdbsession.Session, error) {
	if gdbPath == "" {
		gdbPath = r.defaultGdbPath
	}
	if timeout <= 0 {
		timeout = r.defaultTimeout
	}

	r.mu.Lock()
	if r.maxSessions > 0 && len(r.sessions) >= r.maxSessions {
		r.mu.Unlock()
		return nil, errs.Newf(errs.SessionLimit, "at most %d concurrent sessions allowed", r.maxSessions)
	}
	id := r.nextSessionID()
	r.mu.Unlock()

	sess := gdbsession.New(id, gdbPath, workingDir, timeout)
	if err := sess.Start(ctx); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.sessions[id] = sess
	r.mu.Unlock()

	r.emit(Event{Kind: EventSessionAdded, SessionID: id})
	return sess, nil
}

// Get looks up a session by ID.
func (r *Registry) Get(id string) (*gdbsession.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	return sess, ok
}

// Remove terminates and unregisters a session. It is a no-op if the ID is
// unknown.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	sess, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	if !ok {
		return
	}
	sess.Terminate()
	r.emit(Event{Kind: EventSessionRemoved, SessionID: id})
}

// List returns a snapshot of every currently registered session.
func (r *Registry) List() []*gdbsession.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*gdbsession.Session, 0, len(r.sessions))
	for _, sess := range r.sessions {
		out = append(out, sess)
	}
	return out
}

// Count returns the number of currently registered sessions.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// TerminateAll tears down every registered session, e.g. on server
// shutdown. IDs are snapshotted under the lock and each session is
// terminated and removed outside it, matching Remove's own discipline.
func (r *Registry) TerminateAll() {
	r.mu.Lock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	for _, id := range ids {
		r.Remove(id)
	}
}
