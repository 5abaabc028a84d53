package mcpserver

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zachpodbielniak/gdb-mcp/internal/registry"
)

func newTestServer() *Server {
	reg := registry.New("gdb", time.Second, 0)
	return NewServer(reg, nil, nil)
}

func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("result content is %T, not TextContent", result.Content[0])
	}
	return tc.Text
}

func TestHandleGdbTerminateUnknownSession(t *testing.T) {
	s := newTestServer()
	req := makeRequest(map[string]any{"sessionId": "nope"})

	result, err := s.handleGdbTerminate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result for an unknown session")
	}
}

func TestHandleGdbContinueMissingSessionID(t *testing.T) {
	s := newTestServer()
	req := makeRequest(map[string]any{})

	result, err := s.handleGdbContinue(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result when sessionId is missing")
	}
	if got := textOf(t, result); got != "Missing required parameter: sessionId" {
		t.Fatalf("error text = %q", got)
	}
}

func TestHandleGdbPrintMissingExpression(t *testing.T) {
	s := newTestServer()
	req := makeRequest(map[string]any{"sessionId": "s1"})

	result, err := s.handleGdbPrint(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result when expression is missing")
	}
}

func TestHandleGdbSetBreakpointMissingLocation(t *testing.T) {
	s := newTestServer()
	req := makeRequest(map[string]any{"sessionId": "s1"})

	result, err := s.handleGdbSetBreakpoint(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result when location is missing")
	}
}

func TestHandleGdbSessionHistoryWithoutStore(t *testing.T) {
	s := newTestServer()
	req := makeRequest(map[string]any{"sessionId": "s1"})

	result, err := s.handleGdbSessionHistory(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result when no history store is configured")
	}
}

func TestHandleGdbListSessionsEmpty(t *testing.T) {
	s := newTestServer()
	req := makeRequest(map[string]any{})

	result, err := s.handleGdbListSessions(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %s", textOf(t, result))
	}
	text := textOf(t, result)
	if text == "" {
		t.Fatal("expected non-empty listing text")
	}
}

func TestHandleGdbStartSpawnFailure(t *testing.T) {
	reg := registry.New("definitely-not-a-real-gdb-binary", time.Second, 0)
	s := NewServer(reg, nil, nil)
	req := makeRequest(map[string]any{})

	result, err := s.handleGdbStart(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result when GDB fails to spawn")
	}
	if reg.Count() != 0 {
		t.Fatalf("Count() = %d, want 0 after a failed start", reg.Count())
	}
}

func TestExtractBreakpointNumber(t *testing.T) {
	tests := []struct {
		output string
		want   int
	}{
		{"Breakpoint 1 at 0x1129: file main.c, line 12.", 1},
		{"Breakpoint 42 at 0x401000", 42},
		{"no match here", -1},
		{"", -1},
	}
	for _, tt := range tests {
		if got := extractBreakpointNumber(tt.output); got != tt.want {
			t.Errorf("extractBreakpointNumber(%q) = %d, want %d", tt.output, got, tt.want)
		}
	}
}

func TestToolSchemasAreValidJSON(t *testing.T) {
	tools := []mcp.Tool{
		gdbStartTool(), gdbTerminateTool(), gdbListSessionsTool(), gdbSessionHistoryTool(),
		gdbLoadTool(), gdbAttachTool(), gdbLoadCoreTool(),
		gdbContinueTool(), gdbStepTool(), gdbNextTool(), gdbFinishTool(),
		gdbSetBreakpointTool(),
		gdbBacktraceTool(), gdbPrintTool(), gdbExamineTool(), gdbInfoRegistersTool(), gdbCommandTool(),
		gdbGlibPrintGObjectTool(), gdbGlibPrintGListTool(), gdbGlibPrintGHashTool(),
		gdbGlibTypeHierarchyTool(), gdbGlibSignalInfoTool(),
	}
	seen := make(map[string]bool)
	for _, tool := range tools {
		if tool.Name == "" {
			t.Error("tool with empty name")
		}
		if seen[tool.Name] {
			t.Errorf("duplicate tool name %q", tool.Name)
		}
		seen[tool.Name] = true
	}
}
