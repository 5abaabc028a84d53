package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zachpodbielniak/gdb-mcp/internal/errs"
	"github.com/zachpodbielniak/gdb-mcp/internal/gdbsession"
)

// sessionIDArgs is embedded by every args struct that targets an existing
// session.
type sessionIDArgs struct {
	SessionID string `json:"sessionId"`
}

// getSession resolves sessionID against reg, returning an *mcp.CallToolResult
// already formatted as an error when the lookup fails. Callers check for a
// nil session, not a nil error: the caller's handler always returns nil error
// to mcp-go, reporting tool failures in the result text instead, matching
// the rest of this package's handlers.
func (s *Server) getSession(sessionID string) (*gdbsession.Session, *mcp.CallToolResult) {
	if sessionID == "" {
		return nil, mcp.NewToolResultError("Missing required parameter: sessionId")
	}
	sess, ok := s.registry.Get(sessionID)
	if !ok {
		return nil, mcp.NewToolResultError(fmt.Sprintf("%s: %s", errs.SessionNotFound, sessionID))
	}
	return sess, nil
}

func resultText(format string, args ...any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(fmt.Sprintf(format, args...)), nil
}

func resultError(format string, args ...any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(fmt.Sprintf(format, args...)), nil
}

// record appends an audit row when a history store is configured. A write
// failure is logged and swallowed: the audit trail never fails the tool
// call that produced it.
func (s *Server) record(ctx context.Context, sessionID, kind, detail string) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(ctx, sessionID, kind, detail); err != nil {
		fmt.Fprintf(os.Stderr, "audit: failed to record %s for session %s: %v\n", kind, sessionID, err)
	}
}

// summarizeStop appends a one-line English summary of stopText when a
// summarizer is configured, or returns output unchanged otherwise. A
// summarizer error is logged and swallowed: the reply still carries the
// raw output.
func (s *Server) summarizeStop(ctx context.Context, output, stopText string) string {
	if s.summarizer == nil {
		return output
	}
	summary, err := s.summarizer.Summarize(ctx, stopText)
	if err != nil {
		fmt.Fprintf(os.Stderr, "summarize: failed to summarize stop event: %v\n", err)
		return output
	}
	return fmt.Sprintf("%s\n\nSummary: %s", output, summary)
}
