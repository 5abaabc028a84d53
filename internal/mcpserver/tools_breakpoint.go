package mcpserver

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zachpodbielniak/gdb-mcp/internal/bridge"
)

func gdbSetBreakpointTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"gdb_set_breakpoint",
		"Set a breakpoint at a location, optionally with a condition.",
		json.RawMessage(`{
			"type": "object",
			"properties": {
				"sessionId": {
					"type": "string",
					"description": "GDB session ID"
				},
				"location": {
					"type": "string",
					"description": "Breakpoint location (e.g., function name, file:line, *address)"
				},
				"condition": {
					"type": "string",
					"description": "Breakpoint condition expression (optional)"
				}
			},
			"required": ["sessionId", "location"]
		}`),
	)
}

type gdbSetBreakpointArgs struct {
	SessionID string `json:"sessionId"`
	Location  string `json:"location"`
	Condition string `json:"condition"`
}

// extractBreakpointNumber pulls the breakpoint number out of output like
// "Breakpoint 1 at 0x1129: file main.c, line 12."
func extractBreakpointNumber(output string) int {
	const marker = "Breakpoint "
	idx := strings.Index(output, marker)
	if idx < 0 {
		return -1
	}
	rest := output[idx+len(marker):]
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end == 0 {
		return -1
	}
	n, err := strconv.Atoi(rest[:end])
	if err != nil {
		return -1
	}
	return n
}

func (s *Server) handleGdbSetBreakpoint(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args gdbSetBreakpointArgs
	if err := req.BindArguments(&args); err != nil {
		return resultError("invalid arguments: %v", err)
	}
	if args.Location == "" {
		return resultError("Missing required parameter: location")
	}

	sess, errResult := s.getSession(args.SessionID)
	if sess == nil {
		return errResult, nil
	}

	output, err := bridge.Execute(ctx, sess, "break "+args.Location)
	if err != nil {
		return resultError("Failed to set breakpoint: %v", err)
	}
	s.record(ctx, sess.ID(), "command", "break "+args.Location)

	var condOutput string
	if args.Condition != "" {
		if bpNum := extractBreakpointNumber(output); bpNum > 0 {
			condCmd := "condition " + strconv.Itoa(bpNum) + " " + args.Condition
			condOutput, _ = bridge.Execute(ctx, sess, condCmd)
			s.record(ctx, sess.ID(), "command", condCmd)
		}
	}

	if args.Condition != "" {
		var tail string
		if condOutput != "" {
			tail = "\n" + condOutput
		}
		return resultText("Breakpoint set at: %s with condition: %s\n\nOutput:\n%s%s", args.Location, args.Condition, output, tail)
	}
	return resultText("Breakpoint set at: %s\n\nOutput:\n%s", args.Location, output)
}
