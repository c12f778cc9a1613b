package logger

import (
	"strings"
	"testing"
)

func TestSanitizePreview(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain text untouched", "Promote the sneaker sale", "Promote the sneaker sale"},
		{"control characters stripped", "line1\x00\x1bline2", "line1line2"},
		{"newlines stripped", "line1\nline2", "line1line2"},
		{"truncated with ellipsis", strings.Repeat("a", 300), strings.Repeat("a", MaxPreviewLength) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizePreview(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSanitizePath_InvalidUTF8(t *testing.T) {
	t.Parallel()

	got := SanitizePath("/generate\xff\xfe")
	if got != "/generate" {
		t.Errorf("Expected invalid bytes dropped, got %q", got)
	}
}
