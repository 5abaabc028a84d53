package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zachpodbielniak/gdb-mcp/internal/glib"
)

func expressionSchema(description string) json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"sessionId": {
				"type": "string",
				"description": "GDB session ID"
			},
			"expression": {
				"type": "string",
				"description": "` + description + `"
			}
		},
		"required": ["sessionId", "expression"]
	}`)
}

func gdbGlibPrintGObjectTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"gdb_glib_print_gobject",
		"Pretty-print a GObject instance: its type, reference count, and raw fields.",
		expressionSchema("Pointer or variable referencing a GObject instance"),
	)
}

func (s *Server) handleGdbGlibPrintGObject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.glibHandle(ctx, req, "gdb_glib_print_gobject", glib.PrintGObject)
}

func gdbGlibPrintGListTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"gdb_glib_print_glist",
		"Pretty-print a GList/GSList by walking it element by element.",
		expressionSchema("Pointer or variable referencing a GList or GSList"),
	)
}

func (s *Server) handleGdbGlibPrintGList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.glibHandle(ctx, req, "gdb_glib_print_glist", glib.PrintGList)
}

func gdbGlibPrintGHashTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"gdb_glib_print_ghash",
		"Pretty-print a GHashTable's size, entry count, and raw structure.",
		expressionSchema("Pointer or variable referencing a GHashTable"),
	)
}

func (s *Server) handleGdbGlibPrintGHash(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.glibHandle(ctx, req, "gdb_glib_print_ghash", glib.PrintGHash)
}

func gdbGlibTypeHierarchyTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"gdb_glib_type_hierarchy",
		"Show the GType inheritance chain of a GObject instance.",
		expressionSchema("Pointer or variable referencing a GObject instance"),
	)
}

func (s *Server) handleGdbGlibTypeHierarchy(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.glibHandle(ctx, req, "gdb_glib_type_hierarchy", glib.TypeHierarchy)
}

func gdbGlibSignalInfoTool() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		"gdb_glib_signal_info",
		"List the signals registered on a GObject instance's type.",
		expressionSchema("Pointer or variable referencing a GObject instance"),
	)
}

func (s *Server) handleGdbGlibSignalInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.glibHandle(ctx, req, "gdb_glib_signal_info", glib.SignalInfo)
}

// glibHandle is the shared plumbing every gdb_glib_* tool uses: decode
// args, resolve the session, run fn, and format the result the same way
// every other tool in this package does.
func (s *Server) glibHandle(ctx context.Context, req mcp.CallToolRequest, toolName string, fn glib.Func) (*mcp.CallToolResult, error) {
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

	text, err := fn(ctx, sess, args.Expression)
	if err != nil {
		return resultError("%v", err)
	}
	s.record(ctx, sess.ID(), "command", toolName+" "+args.Expression)
	return mcp.NewToolResultText(text), nil
}
