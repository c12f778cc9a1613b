package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campaignkit/marketing-api/internal/metrics"
	"go.uber.org/zap"
)

func TestRecovery_PanicBecomesGeneric500(t *testing.T) {
	t.Parallel()

	handler := Recovery(zap.NewNop(), metrics.New())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/generate", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Error != "Internal server error." {
		t.Errorf("Expected generic error message, got %q", resp.Error)
	}
	if resp.Path != "/generate" {
		t.Errorf("Expected path in response, got %q", resp.Path)
	}
}

func TestRecovery_NormalRequestsUntouched(t *testing.T) {
	t.Parallel()

	handler := Recovery(zap.NewNop(), metrics.New())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("Expected handler status to pass through, got %d", rec.Code)
	}
}
