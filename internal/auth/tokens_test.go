package auth

import (
	"strings"
	"testing"
	"time"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", 30*time.Minute)

	token, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Errorf("Expected a compact JWS with two separators, got %q", token)
	}

	subject, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if subject != "alice" {
		t.Errorf("Expected subject alice, got %q", subject)
	}
}

func TestTokenService_VerifyRejections(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", 30*time.Minute)

	expired := NewTokenService("test-secret", -1*time.Minute)
	expiredToken, err := expired.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	otherSecret := NewTokenService("different-secret", 30*time.Minute)
	foreignToken, err := otherSecret.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expiredToken},
		{"wrong secret", foreignToken},
		{"malformed", "not-a-token"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := svc.Verify(tt.token); err == nil {
				t.Error("Expected verification to fail")
			}
		})
	}
}
