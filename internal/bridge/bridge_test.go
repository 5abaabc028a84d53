package bridge

import (
	"context"
	"testing"
	"time"

	"github.com/zachpodbielniak/gdb-mcp/internal/gdbsession"
)

func TestExecuteRejectsUnstartedSession(t *testing.T) {
	sess := gdbsession.New("s1", "gdb", "", time.Second)
	_, err := Execute(context.Background(), sess, "print 1")
	if err == nil {
		t.Fatal("expected Execute against an unstarted session to fail")
	}
}

func TestExecuteMIRejectsUnstartedSession(t *testing.T) {
	sess := gdbsession.New("s1", "gdb", "", time.Second)
	_, err := ExecuteMI(context.Background(), sess, "print 1")
	if err == nil {
		t.Fatal("expected ExecuteMI against an unstarted session to fail")
	}
}

func TestGuardDeadlineExceedsSessionTimeout(t *testing.T) {
	sess := gdbsession.New("s1", "gdb", "", 5*time.Second)
	guardCtx, cancel := context.WithTimeout(context.Background(), sess.Timeout()+GuardSlack)
	defer cancel()
	deadline, ok := guardCtx.Deadline()
	if !ok {
		t.Fatal("expected guard context to carry a deadline")
	}
	if time.Until(deadline) <= sess.Timeout() {
		t.Fatalf("guard deadline should exceed the session's own timeout by %v", GuardSlack)
	}
}
