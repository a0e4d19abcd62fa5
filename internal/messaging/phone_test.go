package messaging

import (
	"strings"
	"testing"
)

func TestNormalizeLocal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+919999999999", "9999999999"},
		{"919999999999", "9999999999"},
		{"9999999999", "9999999999"},
		{" +91 99999 99999 ", "9999999999"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeLocal(tt.in); got != tt.want {
			t.Errorf("NormalizeLocal(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncateMessage(t *testing.T) {
	short := "hello"
	if got := TruncateMessage(short); got != short {
		t.Errorf("short message should pass through, got %q", got)
	}

	long := strings.Repeat("a", 2000)
	got := TruncateMessage(long)
	if len(got) != 1024 {
		t.Fatalf("expected 1024 chars, got %d", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("expected trailing ellipsis marker")
	}

	exact := strings.Repeat("b", 1024)
	if got := TruncateMessage(exact); got != exact {
		t.Error("message at the cap should not be truncated")
	}
}
