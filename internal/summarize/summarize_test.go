package summarize

import "testing"

func TestSystemPromptMentionsStopEvent(t *testing.T) {
	if systemPrompt == "" {
		t.Fatal("systemPrompt should not be empty")
	}
	keywords := []string{"gdb", "stop", "sentence"}
	for _, kw := range keywords {
		if !containsFold(systemPrompt, kw) {
			t.Errorf("expected system prompt to contain %q", kw)
		}
	}
}

func TestNewSetsModel(t *testing.T) {
	s := New("claude-haiku-4-5-20251001")
	if s.model != "claude-haiku-4-5-20251001" {
		t.Fatalf("model = %q, want claude-haiku-4-5-20251001", s.model)
	}
}

func containsFold(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if equalFoldASCII(haystack[i:i+len(needle)], needle) {
			return true
		}
	}
	return false
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
