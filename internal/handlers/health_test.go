package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler_Root(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&stubPinger{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Root(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if got := decodeField(t, rec.Body.Bytes(), "message"); got != "AI Marketing API is running!" {
		t.Errorf("Unexpected banner %q", got)
	}
}

func TestHealthHandler_Healthz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pingErr  error
		code     int
		expected string
	}{
		{"database reachable", nil, http.StatusOK, "healthy"},
		{"database down", errors.New("connection refused"), http.StatusServiceUnavailable, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewHealthHandler(&stubPinger{err: tt.pingErr})
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rec := httptest.NewRecorder()
			h.Healthz(rec, req)

			if rec.Code != tt.code {
				t.Errorf("Expected %d, got %d", tt.code, rec.Code)
			}
			if got := decodeField(t, rec.Body.Bytes(), "status"); got != tt.expected {
				t.Errorf("Expected status %q, got %q", tt.expected, got)
			}
		})
	}
}
