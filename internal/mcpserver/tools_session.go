package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func gdbStartTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"gdb_start",
		"Start a new GDB session and return its session ID.",
		json.RawMessage(`{
			"type": "object",
			"properties": {
				"gdbPath": {
					"type": "string",
					"description": "Path to GDB executable (optional, defaults to the server's configured GDB path)"
				},
				"workingDir": {
					"type": "string",
					"description": "Working directory for GDB (optional)"
				}
			}
		}`),
	)
}

type gdbStartArgs struct {
	GdbPath    string `json:"gdbPath"`
	WorkingDir string `json:"workingDir"`
}

func (s *Server) handleGdbStart(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args gdbStartArgs
	if err := req.BindArguments(&args); err != nil {
		return resultError("invalid arguments: %v", err)
	}

	sess, err := s.registry.Create(ctx, args.GdbPath, args.WorkingDir, 0)
	if err != nil {
		return resultError("Failed to start GDB: %v", err)
	}

	workingDir := sess.WorkingDir()
	if workingDir == "" {
		workingDir = "(current)"
	}

	s.record(ctx, sess.ID(), "session-created", fmt.Sprintf("gdbPath=%s workingDir=%s", sess.GdbPath(), workingDir))

	return resultText(
		"GDB session started successfully.\n\nSession ID: %s\nGDB Path: %s\nWorking Directory: %s",
		sess.ID(), sess.GdbPath(), workingDir,
	)
}

func gdbTerminateTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"gdb_terminate",
		"Terminate a GDB session.",
		sessionIDOnlySchema,
	)
}

func (s *Server) handleGdbTerminate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args sessionIDArgs
	if err := req.BindArguments(&args); err != nil {
		return resultError("invalid arguments: %v", err)
	}
	if args.SessionID == "" {
		return resultError("Missing required parameter: sessionId")
	}

	if _, ok := s.registry.Get(args.SessionID); !ok {
		return resultError("No active GDB session with ID: %s", args.SessionID)
	}
	s.registry.Remove(args.SessionID)
	s.record(ctx, args.SessionID, "session-removed", "terminated by gdb_terminate")

	return resultText("GDB session terminated: %s", args.SessionID)
}

func gdbListSessionsTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"gdb_list_sessions",
		"List all active GDB sessions.",
		json.RawMessage(`{"type": "object", "properties": {}}`),
	)
}

func (s *Server) handleGdbListSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions := s.registry.List()

	var b strings.Builder
	fmt.Fprintf(&b, "Active GDB Sessions (%d):\n\n", len(sessions))

	if len(sessions) == 0 {
		b.WriteString("No active sessions.")
	} else {
		for i, sess := range sessions {
			target := sess.TargetProgram()
			if target == "" {
				target = "(none)"
			}
			workingDir := sess.WorkingDir()
			if workingDir == "" {
				workingDir = "(default)"
			}
			fmt.Fprintf(&b, "- ID: %s\n", sess.ID())
			fmt.Fprintf(&b, "  Target: %s\n", target)
			fmt.Fprintf(&b, "  State: %s\n", sess.State())
			fmt.Fprintf(&b, "  Working Dir: %s\n", workingDir)
			if i != len(sessions)-1 {
				b.WriteByte('\n')
			}
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}

func gdbSessionHistoryTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"gdb_session_history",
		"Return the recorded audit history for a session (session creation, state transitions, and completed commands).",
		json.RawMessage(`{
			"type": "object",
			"properties": {
				"sessionId": {
					"type": "string",
					"description": "GDB session ID"
				},
				"limit": {
					"type": "integer",
					"description": "Maximum number of history rows to return (optional, default 100)"
				}
			},
			"required": ["sessionId"]
		}`),
	)
}

type gdbSessionHistoryArgs struct {
	SessionID string `json:"sessionId"`
	Limit     int    `json:"limit"`
}

func (s *Server) handleGdbSessionHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args gdbSessionHistoryArgs
	if err := req.BindArguments(&args); err != nil {
		return resultError("invalid arguments: %v", err)
	}
	if args.SessionID == "" {
		return resultError("Missing required parameter: sessionId")
	}

	if s.history == nil {
		return resultError("Session history is unavailable: no audit log is configured")
	}

	limit := args.Limit
	if limit <= 0 {
		limit = 100
	}

	entries, err := s.history.SessionHistory(ctx, args.SessionID, limit)
	if err != nil {
		return resultError("Failed to read session history: %v", err)
	}
	if entries == nil {
		entries = []HistoryEntry{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return resultError("Failed to marshal session history: %v", err)
	}

	return mcp.NewToolResultText(string(data)), nil
}

// sessionIDOnlySchema is the schema shared by every tool that takes nothing
// but a sessionId.
var sessionIDOnlySchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"sessionId": {
			"type": "string",
			"description": "GDB session ID"
		}
	},
	"required": ["sessionId"]
}`)
