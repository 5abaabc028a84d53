package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zachpodbielniak/gdb-mcp/internal/bridge"
)

func gdbBacktraceTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"gdb_backtrace",
		"Show the current call stack.",
		json.RawMessage(`{
			"type": "object",
			"properties": {
				"sessionId": {
					"type": "string",
					"description": "GDB session ID"
				},
				"full": {
					"type": "boolean",
					"description": "Show local variables in each frame (optional)"
				},
				"limit": {
					"type": "integer",
					"description": "Maximum number of frames to show (optional)"
				}
			},
			"required": ["sessionId"]
		}`),
	)
}

type gdbBacktraceArgs struct {
	SessionID string `json:"sessionId"`
	Full      bool   `json:"full"`
	Limit     *int   `json:"limit"`
}

func (s *Server) handleGdbBacktrace(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args gdbBacktraceArgs
	if err := req.BindArguments(&args); err != nil {
		return resultError("invalid arguments: %v", err)
	}
	sess, errResult := s.getSession(args.SessionID)
	if sess == nil {
		return errResult, nil
	}

	var cmd strings.Builder
	cmd.WriteString("backtrace")
	if args.Full {
		cmd.WriteString(" full")
	}
	if args.Limit != nil {
		fmt.Fprintf(&cmd, " %d", *args.Limit)
	}

	cmdText := cmd.String()
	output, err := bridge.Execute(ctx, sess, cmdText)
	if err != nil {
		return resultError("Failed to get backtrace: %v", err)
	}
	s.record(ctx, sess.ID(), "command", cmdText)

	fullNote, limitNote := "", ""
	if args.Full {
		fullNote = " (full)"
	}
	if args.Limit != nil {
		limitNote = fmt.Sprintf(" (limit: %d)", *args.Limit)
	}

	return resultText("Backtrace%s%s:\n\n%s", fullNote, limitNote, output)
}

func gdbPrintTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"gdb_print",
		"Evaluate and print the value of an expression.",
		json.RawMessage(`{
			"type": "object",
			"properties": {
				"sessionId": {
					"type": "string",
					"description": "GDB session ID"
				},
				"expression": {
					"type": "string",
					"description": "Expression to evaluate"
				}
			},
			"required": ["sessionId", "expression"]
		}`),
	)
}

type gdbExpressionArgs struct {
	SessionID  string `json:"sessionId"`
	Expression string `json:"expression"`
}

func (s *Server) handleGdbPrint(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args gdbExpressionArgs
	if err := req.BindArguments(&args); err != nil {
		return resultError("invalid arguments: %v", err)
	}
	if args.Expression == "" {
		return resultError("Missing required parameter: expression")
	}
	sess, errResult := s.getSession(args.SessionID)
	if sess == nil {
		return errResult, nil
	}

	output, err := bridge.Execute(ctx, sess, "print "+args.Expression)
	if err != nil {
		return resultError("Failed to print expression: %v", err)
	}
	s.record(ctx, sess.ID(), "command", "print "+args.Expression)
	return resultText("Print %s:\n\n%s", args.Expression, output)
}

func gdbExamineTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"gdb_examine",
		"Examine a region of memory.",
		json.RawMessage(`{
			"type": "object",
			"properties": {
				"sessionId": {
					"type": "string",
					"description": "GDB session ID"
				},
				"expression": {
					"type": "string",
					"description": "Memory address or expression"
				},
				"format": {
					"type": "string",
					"description": "Display format: x(hex), d(decimal), u(unsigned), o(octal), t(binary), a(address), c(char), f(float), s(string), i(instruction)"
				},
				"count": {
					"type": "integer",
					"description": "Number of units to display (optional, default 1)"
				}
			},
			"required": ["sessionId", "expression"]
		}`),
	)
}

type gdbExamineArgs struct {
	SessionID  string `json:"sessionId"`
	Expression string `json:"expression"`
	Format     string `json:"format"`
	Count      int    `json:"count"`
}

func (s *Server) handleGdbExamine(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args gdbExamineArgs
	if err := req.BindArguments(&args); err != nil {
		return resultError("invalid arguments: %v", err)
	}
	if args.Expression == "" {
		return resultError("Missing required parameter: expression")
	}
	sess, errResult := s.getSession(args.SessionID)
	if sess == nil {
		return errResult, nil
	}

	format := args.Format
	if format == "" {
		format = "x"
	}
	count := args.Count
	if count == 0 {
		count = 1
	}

	cmd := fmt.Sprintf("x/%d%s %s", count, format, args.Expression)
	output, err := bridge.Execute(ctx, sess, cmd)
	if err != nil {
		return resultError("Failed to examine memory: %v", err)
	}
	s.record(ctx, sess.ID(), "command", cmd)

	return resultText("Examine %s (format: %s, count: %d):\n\n%s", args.Expression, format, count, output)
}

func gdbInfoRegistersTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"gdb_info_registers",
		"Display CPU registers, or a single named register.",
		json.RawMessage(`{
			"type": "object",
			"properties": {
				"sessionId": {
					"type": "string",
					"description": "GDB session ID"
				},
				"register": {
					"type": "string",
					"description": "Specific register name to display (optional, shows all if omitted)"
				}
			},
			"required": ["sessionId"]
		}`),
	)
}

type gdbInfoRegistersArgs struct {
	SessionID string `json:"sessionId"`
	Register  string `json:"register"`
}

func (s *Server) handleGdbInfoRegisters(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args gdbInfoRegistersArgs
	if err := req.BindArguments(&args); err != nil {
		return resultError("invalid arguments: %v", err)
	}
	sess, errResult := s.getSession(args.SessionID)
	if sess == nil {
		return errResult, nil
	}

	cmd := "info registers"
	if args.Register != "" {
		cmd += " " + args.Register
	}

	output, err := bridge.Execute(ctx, sess, cmd)
	if err != nil {
		return resultError("Failed to get register info: %v", err)
	}
	s.record(ctx, sess.ID(), "command", cmd)

	if args.Register != "" {
		return resultText("Register info for %s:\n\n%s", args.Register, output)
	}
	return resultText("Register info:\n\n%s", output)
}

func gdbCommandTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"gdb_command",
		"Execute an arbitrary raw GDB command.",
		json.RawMessage(`{
			"type": "object",
			"properties": {
				"sessionId": {
					"type": "string",
					"description": "GDB session ID"
				},
				"command": {
					"type": "string",
					"description": "GDB command to execute"
				}
			},
			"required": ["sessionId", "command"]
		}`),
	)
}

type gdbCommandArgs struct {
	SessionID string `json:"sessionId"`
	Command   string `json:"command"`
}

func (s *Server) handleGdbCommand(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args gdbCommandArgs
	if err := req.BindArguments(&args); err != nil {
		return resultError("invalid arguments: %v", err)
	}
	if args.Command == "" {
		return resultError("Missing required parameter: command")
	}
	sess, errResult := s.getSession(args.SessionID)
	if sess == nil {
		return errResult, nil
	}

	output, err := bridge.Execute(ctx, sess, args.Command)
	if err != nil {
		return resultError("Failed to execute command: %v", err)
	}
	s.record(ctx, sess.ID(), "command", args.Command)
	return resultText("Command: %s\n\nOutput:\n%s", args.Command, output)
}
