package logger

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxPathLength is the maximum length for URL paths in logs
	MaxPathLength = 500
	// MaxPreviewLength is the maximum length for prompt/output previews in logs
	MaxPreviewLength = 200
)

// SanitizePath sanitizes a URL path for safe logging: strips control
// characters, validates UTF-8, and truncates.
func SanitizePath(path string) string {
	return sanitize(path, MaxPathLength)
}

// SanitizePreview produces a log-safe preview of free-form text such as a
// prompt or model output. Guards against log injection via embedded control
// characters.
func SanitizePreview(text string) string {
	return sanitize(text, MaxPreviewLength)
}

func sanitize(s string, maxLen int) string {
	if s == "" {
		return ""
	}

	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}

	var builder strings.Builder
	builder.Grow(len(s))
	for _, r := range s {
		if unicode.IsPrint(r) || r == ' ' || r == '\t' {
			builder.WriteRune(r)
		}
	}
	s = builder.String()

	if len(s) > maxLen {
		s = s[:maxLen] + "..."
	}

	return s
}
