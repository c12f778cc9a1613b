package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/campaignkit/marketing-api/internal/metrics"
	"github.com/campaignkit/marketing-api/internal/services/segment"
	"go.uber.org/zap"
)

func newSegmentHandler() *SegmentHandler {
	m := metrics.New()
	return NewSegmentHandler(segment.New(zap.NewNop(), m), m)
}

func postJSON(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestSegmentHandler_Segment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		expected []string
	}{
		{
			name:     "full profile",
			body:     `{"age": 30, "interests": ["fitness", "tech"], "location": "urban"}`,
			expected: []string{"Millennial", "Fitness Enthusiast", "Tech Savvy", "Urban Dweller"},
		},
		{
			name:     "defaults to gen z",
			body:     `{}`,
			expected: []string{"GenZ"},
		},
		{
			name:     "unknown interests and location",
			body:     `{"age": 50, "interests": ["sailing"], "location": "coastal"}`,
			expected: []string{"GenX+"},
		},
	}

	h := newSegmentHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := postJSON(h.Segment, tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
			}

			var resp struct {
				Segments []string `json:"segments"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if !reflect.DeepEqual(resp.Segments, tt.expected) {
				t.Errorf("Expected segments %v, got %v", tt.expected, resp.Segments)
			}
		})
	}
}

func TestSegmentHandler_Idempotent(t *testing.T) {
	t.Parallel()

	h := newSegmentHandler()
	body := `{"age": 22, "interests": ["books"], "location": "rural"}`

	first := postJSON(h.Segment, body)
	second := postJSON(h.Segment, body)
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Errorf("Expected byte-identical responses, got %q then %q", first.Body.String(), second.Body.String())
	}
}

func TestSegmentHandler_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"negative age", `{"age": -1}`},
		{"malformed json", `{"age": `},
		{"wrong type", `{"age": "thirty"}`},
	}

	h := newSegmentHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := postJSON(h.Segment, tt.body)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("Expected 422, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "detail") {
				t.Errorf("Expected detail field in %s", rec.Body.String())
			}
		})
	}
}
