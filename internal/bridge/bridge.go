// Package bridge is the single entry point every MCP tool handler uses to
// run a command against a session. It layers a guard deadline on top of
// the session's own per-command timeout: two independent timers watching
// for the same failure (GDB wedged, or the read loop never waking up) are
// cheaper than trying to prove one of them can't fail.
package bridge

import (
	"context"
	"time"

	"github.com/zachpodbielniak/gdb-mcp/internal/gdbsession"
	"github.com/zachpodbielniak/gdb-mcp/internal/mi"
)

// GuardSlack is added on top of a session's own timeout for the outer
// deadline, so the guard only ever fires after the session's internal
// timeout has had its chance to.
const GuardSlack = time.Second

// Execute runs a raw command through sess, returning its accumulated
// output text.
func Execute(ctx context.Context, sess *gdbsession.Session, command string) (string, error) {
	guardCtx, cancel := context.WithTimeout(ctx, sess.Timeout()+GuardSlack)
	defer cancel()
	return sess.Execute(guardCtx, command)
}

// ExecuteMI runs a command through sess, returning the parsed MI records
// observed before completion.
func ExecuteMI(ctx context.Context, sess *gdbsession.Session, command string) ([]mi.Record, error) {
	guardCtx, cancel := context.WithTimeout(ctx, sess.Timeout()+GuardSlack)
	defer cancel()
	return sess.ExecuteMI(guardCtx, command)
}
