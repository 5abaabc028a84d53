package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zachpodbielniak/gdb-mcp/internal/audit"
	"github.com/zachpodbielniak/gdb-mcp/internal/config"
	"github.com/zachpodbielniak/gdb-mcp/internal/eventhub"
	"github.com/zachpodbielniak/gdb-mcp/internal/mcpserver"
	"github.com/zachpodbielniak/gdb-mcp/internal/redact"
	"github.com/zachpodbielniak/gdb-mcp/internal/registry"
	"github.com/zachpodbielniak/gdb-mcp/internal/summarize"
)

const licenseText = `gdb-mcp-server - GDB debugger MCP server

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
`

func main() {
	var showVersion, showLicense bool

	rootCmd := &cobra.Command{
		Use:   "gdb-mcp-server",
		Short: "A Model Context Protocol (MCP) server for GDB debugging",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Printf("%s %s\n", config.ServerName, config.ServerVersion)
				return nil
			}
			if showLicense {
				fmt.Print(licenseText)
				return nil
			}
			return run()
		},
	}

	f := rootCmd.Flags()
	f.StringP("gdb-path", "g", "gdb", "path to the GDB binary")
	f.Int("session-timeout", 30, "seconds a gdb_* tool call waits before the session is declared unresponsive")
	f.Int("max-sessions", 0, "maximum concurrent GDB sessions (0 = unlimited)")
	f.String("audit-db", "gdb-mcp-audit.db", "path to the SQLite audit database")
	f.String("diagnostics-addr", "", "listen address for the read-only diagnostics server (empty disables it)")
	f.String("summary-model", "claude-haiku-4-5-20251001", "Claude model for stop-reason summarization")
	f.BoolVarP(&showVersion, "version", "v", false, "show version information")
	f.BoolVarP(&showLicense, "license", "l", false, "show license information (AGPLv3)")

	bindFlag := func(viperKey, flagName string) {
		_ = viper.BindPFlag(viperKey, f.Lookup(flagName))
	}
	bindFlag("gdb_path", "gdb-path")
	bindFlag("session_timeout", "session-timeout")
	bindFlag("max_sessions", "max-sessions")
	bindFlag("audit_db", "audit-db")
	bindFlag("diagnostics_addr", "diagnostics-addr")
	bindFlag("summary_model", "summary-model")

	viper.SetEnvPrefix("GDB_MCP")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	_ = viper.BindEnv("anthropic_api_key", "ANTHROPIC_API_KEY")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	reg := registry.New(cfg.GdbPath, time.Duration(cfg.SessionTimeout)*time.Second, cfg.MaxSessions)
	filter := redact.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var history mcpserver.HistoryStore
	if cfg.AuditDB != "" {
		store, err := audit.Open(cfg.AuditDB, filter)
		if err != nil {
			return fmt.Errorf("open audit log: %w", err)
		}
		defer store.Close() //nolint:errcheck
		history = store

		listener := audit.NewListener(store, reg)
		go listener.Watch(ctx)
	}

	var diagServer *eventhub.Server
	if cfg.DiagnosticsAddr != "" {
		hub := eventhub.New()
		bridge := eventhub.NewBridge(hub, reg, filter)
		go bridge.Watch(ctx)

		diagServer = eventhub.NewServer(cfg.DiagnosticsAddr, reg, hub)
		go func() {
			if err := diagServer.Start(); err != nil {
				log.Printf("diagnostics server error: %v", err)
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		log.Printf("received %s, shutting down...", sig)
		cancel()
		reg.TerminateAll()
		if diagServer != nil {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := diagServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("diagnostics server shutdown: %v", err)
			}
		}
		os.Exit(0)
	}()

	var summarizer mcpserver.Summarizer
	if cfg.AnthropicAPIKey != "" {
		summarizer = summarize.New(cfg.SummaryModel)
	}

	return mcpserver.Run(reg, history, summarizer)
}
