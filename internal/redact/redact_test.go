package redact

import (
	"strings"
	"testing"
)

func TestRedactRawSecret(t *testing.T) {
	t.Setenv("GDB_MCP_SECRET_DB_PASS", "s3cretP@ss")

	f := New()
	input := `print returned "logged in with s3cretP@ss successfully"`
	got := f.Redact(input)

	if strings.Contains(got, "s3cretP@ss") {
		t.Errorf("raw secret should be redacted, got: %s", got)
	}
	if !strings.Contains(got, "[REDACTED:GDB_MCP_SECRET_DB_PASS]") {
		t.Errorf("expected redaction placeholder, got: %s", got)
	}
}

func TestRedactURLEncodedSecret(t *testing.T) {
	t.Setenv("GDB_MCP_SECRET_API_KEY", "p@ssw0rd")

	f := New()
	input := "https://example.com/login?key=p%40ssw0rd"
	got := f.Redact(input)

	if strings.Contains(got, "p%40ssw0rd") {
		t.Errorf("URL-encoded secret should be redacted, got: %s", got)
	}
	if !strings.Contains(got, "[REDACTED:GDB_MCP_SECRET_API_KEY:urlencoded]") {
		t.Errorf("expected urlencoded redaction placeholder, got: %s", got)
	}
}

func TestRedactNoSecretsIsPassthrough(t *testing.T) {
	f := New()
	input := "nothing to redact here"
	if got := f.Redact(input); got != input {
		t.Errorf("expected passthrough, got: %s", got)
	}
}

func TestRedactNilFilterIsPassthrough(t *testing.T) {
	var f *Filter
	input := "nothing to redact here"
	if got := f.Redact(input); got != input {
		t.Errorf("expected passthrough on nil filter, got: %s", got)
	}
}
