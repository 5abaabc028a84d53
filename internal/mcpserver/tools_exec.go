package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zachpodbielniak/gdb-mcp/internal/bridge"
)

func gdbContinueTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"gdb_continue",
		"Continue execution of a stopped program.",
		sessionIDOnlySchema,
	)
}

func (s *Server) handleGdbContinue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args sessionIDArgs
	if err := req.BindArguments(&args); err != nil {
		return resultError("invalid arguments: %v", err)
	}
	sess, errResult := s.getSession(args.SessionID)
	if sess == nil {
		return errResult, nil
	}

	output, err := bridge.Execute(ctx, sess, "continue")
	if err != nil {
		return resultError("Failed to continue: %v", err)
	}
	s.record(ctx, sess.ID(), "command", "continue")
	reply := s.summarizeStop(ctx, output, output)
	return resultText("Continued execution\n\nOutput:\n%s", reply)
}

var stepNextSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"sessionId": {
			"type": "string",
			"description": "GDB session ID"
		},
		"instructions": {
			"type": "boolean",
			"description": "Step by instructions instead of source lines (optional)"
		}
	},
	"required": ["sessionId"]
}`)

type stepArgs struct {
	SessionID    string `json:"sessionId"`
	Instructions bool   `json:"instructions"`
}

func gdbStepTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"gdb_step",
		"Step one source line (or instruction), stepping into function calls.",
		stepNextSchema,
	)
}

func (s *Server) handleGdbStep(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args stepArgs
	if err := req.BindArguments(&args); err != nil {
		return resultError("invalid arguments: %v", err)
	}
	sess, errResult := s.getSession(args.SessionID)
	if sess == nil {
		return errResult, nil
	}

	cmd, unit := "step", "line"
	if args.Instructions {
		cmd, unit = "stepi", "instruction"
	}

	output, err := bridge.Execute(ctx, sess, cmd)
	if err != nil {
		return resultError("Failed to step: %v", err)
	}
	s.record(ctx, sess.ID(), "command", cmd)
	reply := s.summarizeStop(ctx, output, output)
	return resultText("Stepped %s\n\nOutput:\n%s", unit, reply)
}

func gdbNextTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"gdb_next",
		"Step one source line (or instruction), stepping over function calls.",
		stepNextSchema,
	)
}

func (s *Server) handleGdbNext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args stepArgs
	if err := req.BindArguments(&args); err != nil {
		return resultError("invalid arguments: %v", err)
	}
	sess, errResult := s.getSession(args.SessionID)
	if sess == nil {
		return errResult, nil
	}

	cmd, unit := "next", "function call"
	if args.Instructions {
		cmd, unit = "nexti", "instruction"
	}

	output, err := bridge.Execute(ctx, sess, cmd)
	if err != nil {
		return resultError("Failed to step over: %v", err)
	}
	s.record(ctx, sess.ID(), "command", cmd)
	reply := s.summarizeStop(ctx, output, output)
	return resultText("Stepped over %s\n\nOutput:\n%s", unit, reply)
}

func gdbFinishTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"gdb_finish",
		"Run until the current function returns.",
		sessionIDOnlySchema,
	)
}

func (s *Server) handleGdbFinish(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args sessionIDArgs
	if err := req.BindArguments(&args); err != nil {
		return resultError("invalid arguments: %v", err)
	}
	sess, errResult := s.getSession(args.SessionID)
	if sess == nil {
		return errResult, nil
	}

	output, err := bridge.Execute(ctx, sess, "finish")
	if err != nil {
		return resultError("Failed to finish: %v", err)
	}
	s.record(ctx, sess.ID(), "command", "finish")
	reply := s.summarizeStop(ctx, output, output)
	return resultText("Finished current function\n\nOutput:\n%s", reply)
}
