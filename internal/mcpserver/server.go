// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes GDB session control as typed tools over stdio JSON-RPC. It wraps
// internal/registry and internal/bridge, translating tool arguments into MI
// commands and GDB command-line text, and formatting replies as plain text
// the way the tool's underlying CLI already does.
package mcpserver

import (
	"context"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/zachpodbielniak/gdb-mcp/internal/registry"
)

// ServerName and ServerVersion identify this server to MCP clients.
const (
	ServerName    = "gdb-mcp-server"
	ServerVersion = "1.0.0"
)

// HistoryStore is the audit trail Server writes to and gdb_session_history
// reads from. internal/audit implements it; Server works without one (writes
// are skipped, and the tool reports that history is unavailable) so the
// audit log stays strictly additive.
type HistoryStore interface {
	Record(ctx context.Context, sessionID, kind, detail string) error
	SessionHistory(ctx context.Context, sessionID string, limit int) ([]HistoryEntry, error)
}

// HistoryEntry is one row of a session's audit trail.
type HistoryEntry struct {
	Timestamp string `json:"timestamp"`
	Kind      string `json:"kind"`
	Detail    string `json:"detail"`
}

// Summarizer turns a formatted stop payload into one sentence of English.
// internal/summarize implements it; Server works without one (the exec
// tools simply omit the summary line) so it stays strictly additive.
type Summarizer interface {
	Summarize(ctx context.Context, stopText string) (string, error)
}

// Server holds everything a tool handler needs: the session registry and
// two optional extras, an audit-log read path and a stop summarizer.
type Server struct {
	registry   *registry.Registry
	history    HistoryStore
	summarizer Summarizer
}

// NewServer creates an MCP server backed by reg. history and summarizer may
// both be nil.
func NewServer(reg *registry.Registry, history HistoryStore, summarizer Summarizer) *Server {
	return &Server{registry: reg, history: history, summarizer: summarizer}
}

// Run starts the MCP stdio server. It blocks until stdin is closed.
func Run(reg *registry.Registry, history HistoryStore, summarizer Summarizer) error {
	s := NewServer(reg, history, summarizer)

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
	)

	tools := []server.ServerTool{
		{Tool: gdbStartTool(), Handler: s.handleGdbStart},
		{Tool: gdbTerminateTool(), Handler: s.handleGdbTerminate},
		{Tool: gdbListSessionsTool(), Handler: s.handleGdbListSessions},
		{Tool: gdbSessionHistoryTool(), Handler: s.handleGdbSessionHistory},

		{Tool: gdbLoadTool(), Handler: s.handleGdbLoad},
		{Tool: gdbAttachTool(), Handler: s.handleGdbAttach},
		{Tool: gdbLoadCoreTool(), Handler: s.handleGdbLoadCore},

		{Tool: gdbContinueTool(), Handler: s.handleGdbContinue},
		{Tool: gdbStepTool(), Handler: s.handleGdbStep},
		{Tool: gdbNextTool(), Handler: s.handleGdbNext},
		{Tool: gdbFinishTool(), Handler: s.handleGdbFinish},

		{Tool: gdbSetBreakpointTool(), Handler: s.handleGdbSetBreakpoint},

		{Tool: gdbBacktraceTool(), Handler: s.handleGdbBacktrace},
		{Tool: gdbPrintTool(), Handler: s.handleGdbPrint},
		{Tool: gdbExamineTool(), Handler: s.handleGdbExamine},
		{Tool: gdbInfoRegistersTool(), Handler: s.handleGdbInfoRegisters},
		{Tool: gdbCommandTool(), Handler: s.handleGdbCommand},

		{Tool: gdbGlibPrintGObjectTool(), Handler: s.handleGdbGlibPrintGObject},
		{Tool: gdbGlibPrintGListTool(), Handler: s.handleGdbGlibPrintGList},
		{Tool: gdbGlibPrintGHashTool(), Handler: s.handleGdbGlibPrintGHash},
		{Tool: gdbGlibTypeHierarchyTool(), Handler: s.handleGdbGlibTypeHierarchy},
		{Tool: gdbGlibSignalInfoTool(), Handler: s.handleGdbGlibSignalInfo},
	}
	mcpServer.AddTools(tools...)

	stdio := server.NewStdioServer(mcpServer)
	stdio.SetErrorLogger(log.New(os.Stderr, "[mcp] ", log.LstdFlags))

	return stdio.Listen(context.Background(), os.Stdin, os.Stdout)
}
