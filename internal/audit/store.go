// Package audit is a write-mostly log of what happened to each GDB
// session: creation, state transitions, completed commands, and removal.
// It is never consulted to reconstruct session state — gdbsession and
// registry already own that — it exists purely so an operator can ask
// "what did this session do" after the fact via gdb_session_history.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/zachpodbielniak/gdb-mcp/internal/mcpserver"
	"github.com/zachpodbielniak/gdb-mcp/internal/redact"
)

// Store is a SQLite-backed audit log. The zero value is not usable;
// construct one with Open.
type Store struct {
	conn   *sql.DB
	filter *redact.Filter
}

// Open creates (or reuses) the SQLite database at path and applies every
// pending migration. filter redacts secret values out of every detail
// string before it is written; a nil filter disables redaction.
func Open(path string, filter *redact.Filter) (*Store, error) {
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	migrationsFS, err := fs.Sub(MigrationFS, "migrations")
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrations sub-fs: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, conn, migrationsFS)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("create migration provider: %w", err)
	}

	if _, err := provider.Up(context.Background()); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return &Store{conn: conn, filter: filter}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Record appends one audit row. kind is a short tag ("session-created",
// "command", "session-removed" from mcpserver; "state-changed", "stopped",
// "process-exited" from Listener); detail is free-form text describing what
// happened.
func (s *Store) Record(ctx context.Context, sessionID, kind, detail string) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO audit_log (session_id, kind, detail) VALUES (?, ?, ?)`,
		sessionID, kind, s.filter.Redact(detail),
	)
	if err != nil {
		return fmt.Errorf("insert audit row: %w", err)
	}
	return nil
}

// SessionHistory returns the most recent rows for sessionID, oldest first,
// capped at limit. It implements mcpserver.HistoryStore.
func (s *Store) SessionHistory(ctx context.Context, sessionID string, limit int) ([]mcpserver.HistoryEntry, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT created_at, kind, detail FROM audit_log
		 WHERE session_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var entries []mcpserver.HistoryEntry
	for rows.Next() {
		var e mcpserver.HistoryEntry
		if err := rows.Scan(&e.Timestamp, &e.Kind, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Rows came back newest-first (for the LIMIT to keep the most recent
	// ones); flip to oldest-first so the tool reply reads like a timeline.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}
