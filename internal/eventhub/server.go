package eventhub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/zachpodbielniak/gdb-mcp/internal/registry"
)

// Server is a small read-only HTTP surface over a registry and hub, meant
// for operator diagnostics rather than for driving sessions — every gdb_*
// tool call still goes through MCP.
type Server struct {
	reg    *registry.Registry
	hub    *Hub
	mux    *http.ServeMux
	server *http.Server
}

// NewServer creates a diagnostics server listening on addr.
func NewServer(addr string, reg *registry.Registry, hub *Hub) *Server {
	s := &Server{
		reg: reg,
		hub: hub,
		mux: http.NewServeMux(),
	}
	s.registerRoutes()
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE needs no write timeout
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /sessions", s.handleSessions)
	s.mux.HandleFunc("GET /sessions/{id}/events", s.handleSessionEvents)
}

// Start begins serving HTTP requests. It blocks until the server is shut
// down.
func (s *Server) Start() error {
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type sessionSnapshot struct {
	ID         string `json:"id"`
	State      string `json:"state"`
	Target     string `json:"target,omitempty"`
	WorkingDir string `json:"workingDir,omitempty"`
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	sessions := s.reg.List()
	out := make([]sessionSnapshot, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, sessionSnapshot{
			ID:         sess.ID(),
			State:      sess.State().String(),
			Target:     sess.TargetProgram(),
			WorkingDir: sess.WorkingDir(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleSessionEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.reg.Get(id); !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, unsubscribe := s.hub.Subscribe(id)
	defer unsubscribe()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Kind, data)
			flusher.Flush()
		}
	}
}
