// Package config holds the runtime configuration surface for the GDB MCP
// server, assembled from flags and environment variables by viper.
package config

import "github.com/spf13/viper"

// ServerName and ServerVersion identify this server in the --version
// output.
const (
	ServerName    = "gdb-mcp-server"
	ServerVersion = "1.0.0"
)

// Config holds all runtime configuration for the GDB MCP server.
type Config struct {
	// GdbPath is the GDB binary new sessions launch when a tool call omits
	// its own gdbPath argument.
	GdbPath string
	// SessionTimeout bounds how long a single gdb_* tool call waits for GDB
	// to answer before the session is declared unresponsive, in seconds.
	SessionTimeout int
	// MaxSessions caps how many concurrent GDB sessions the registry holds.
	MaxSessions int
	// AuditDB is the SQLite file the audit log is written to. Empty disables
	// the audit log entirely.
	AuditDB string
	// DiagnosticsAddr is the listen address for the read-only diagnostics
	// HTTP/SSE server. Empty disables it.
	DiagnosticsAddr string
	// AnthropicAPIKey, when set, enables stop-reason summarization on
	// gdb_continue/gdb_step/gdb_next/gdb_finish replies.
	AnthropicAPIKey string
	// SummaryModel is the Anthropic model identifier used for stop-reason
	// summarization.
	SummaryModel string
}

// Load reads configuration from viper, which merges flag values, env vars,
// and defaults (set up by the cobra command in cmd/gdbmcp).
func Load() Config {
	return Config{
		GdbPath:         viper.GetString("gdb_path"),
		SessionTimeout:  viper.GetInt("session_timeout"),
		MaxSessions:     viper.GetInt("max_sessions"),
		AuditDB:         viper.GetString("audit_db"),
		DiagnosticsAddr: viper.GetString("diagnostics_addr"),
		AnthropicAPIKey: viper.GetString("anthropic_api_key"),
		SummaryModel:    viper.GetString("summary_model"),
	}
}
