package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zachpodbielniak/gdb-mcp/internal/bridge"
)

func gdbLoadTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"gdb_load",
		"Load a program into GDB for debugging.",
		json.RawMessage(`{
			"type": "object",
			"properties": {
				"sessionId": {
					"type": "string",
					"description": "GDB session ID"
				},
				"program": {
					"type": "string",
					"description": "Path to the program to debug"
				},
				"arguments": {
					"type": "array",
					"items": {"type": "string"},
					"description": "Command-line arguments for the program (optional)"
				}
			},
			"required": ["sessionId", "program"]
		}`),
	)
}

type gdbLoadArgs struct {
	SessionID string   `json:"sessionId"`
	Program   string   `json:"program"`
	Arguments []string `json:"arguments"`
}

func (s *Server) handleGdbLoad(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args gdbLoadArgs
	if err := req.BindArguments(&args); err != nil {
		return resultError("invalid arguments: %v", err)
	}
	if args.Program == "" {
		return resultError("Missing required parameter: program")
	}

	sess, errResult := s.getSession(args.SessionID)
	if sess == nil {
		return errResult, nil
	}

	loadCmd := `file "` + args.Program + `"`
	output, err := bridge.Execute(ctx, sess, loadCmd)
	if err != nil {
		return resultError("Failed to load program: %v", err)
	}
	sess.SetTargetProgram(args.Program)
	s.record(ctx, sess.ID(), "command", loadCmd)

	var argsOutput string
	if len(args.Arguments) > 0 {
		argsCmd := "set args " + strings.Join(args.Arguments, " ")
		argsOutput, _ = bridge.Execute(ctx, sess, argsCmd)
		s.record(ctx, sess.ID(), "command", argsCmd)
	}

	if argsOutput != "" {
		return resultText("Program loaded: %s\n\nOutput:\n%s\n%s", args.Program, output, argsOutput)
	}
	return resultText("Program loaded: %s\n\nOutput:\n%s", args.Program, output)
}

func gdbAttachTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"gdb_attach",
		"Attach GDB to a running process.",
		json.RawMessage(`{
			"type": "object",
			"properties": {
				"sessionId": {
					"type": "string",
					"description": "GDB session ID"
				},
				"pid": {
					"type": "integer",
					"description": "Process ID to attach to"
				}
			},
			"required": ["sessionId", "pid"]
		}`),
	)
}

type gdbAttachArgs struct {
	SessionID string `json:"sessionId"`
	Pid       int64  `json:"pid"`
}

func (s *Server) handleGdbAttach(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args gdbAttachArgs
	if err := req.BindArguments(&args); err != nil {
		return resultError("invalid arguments: %v", err)
	}
	if args.Pid == 0 {
		return resultError("Missing required parameter: pid")
	}

	sess, errResult := s.getSession(args.SessionID)
	if sess == nil {
		return errResult, nil
	}

	attachCmd := fmt.Sprintf("attach %d", args.Pid)
	output, err := bridge.Execute(ctx, sess, attachCmd)
	if err != nil {
		return resultError("Failed to attach to process: %v", err)
	}
	s.record(ctx, sess.ID(), "command", attachCmd)

	return resultText("Attached to process %d\n\nOutput:\n%s", args.Pid, output)
}

func gdbLoadCoreTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"gdb_load_core",
		"Load a program and a core dump file for post-mortem analysis.",
		json.RawMessage(`{
			"type": "object",
			"properties": {
				"sessionId": {
					"type": "string",
					"description": "GDB session ID"
				},
				"program": {
					"type": "string",
					"description": "Path to the program executable"
				},
				"corePath": {
					"type": "string",
					"description": "Path to the core dump file"
				}
			},
			"required": ["sessionId", "program", "corePath"]
		}`),
	)
}

type gdbLoadCoreArgs struct {
	SessionID string `json:"sessionId"`
	Program   string `json:"program"`
	CorePath  string `json:"corePath"`
}

func (s *Server) handleGdbLoadCore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args gdbLoadCoreArgs
	if err := req.BindArguments(&args); err != nil {
		return resultError("invalid arguments: %v", err)
	}
	if args.Program == "" {
		return resultError("Missing required parameter: program")
	}
	if args.CorePath == "" {
		return resultError("Missing required parameter: corePath")
	}

	sess, errResult := s.getSession(args.SessionID)
	if sess == nil {
		return errResult, nil
	}

	fileCmd := `file "` + args.Program + `"`
	fileOutput, err := bridge.Execute(ctx, sess, fileCmd)
	if err != nil {
		return resultError("Failed to load program: %v", err)
	}
	s.record(ctx, sess.ID(), "command", fileCmd)

	coreCmd := `core-file "` + args.CorePath + `"`
	coreOutput, err := bridge.Execute(ctx, sess, coreCmd)
	if err != nil {
		return resultError("Failed to load core file: %v", err)
	}
	sess.SetTargetProgram(args.Program)
	s.record(ctx, sess.ID(), "command", coreCmd)

	btOutput, err := bridge.Execute(ctx, sess, "backtrace")
	if err != nil || btOutput == "" {
		btOutput = "(unavailable)"
	} else {
		s.record(ctx, sess.ID(), "command", "backtrace")
	}

	return resultText(
		"Core file loaded: %s\n\nProgram: %s\n\nOutput:\n%s\n%s\n\nInitial Backtrace:\n%s",
		args.CorePath, args.Program, fileOutput, coreOutput, btOutput,
	)
}
