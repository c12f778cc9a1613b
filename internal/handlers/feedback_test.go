package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campaignkit/marketing-api/internal/metrics"
	"github.com/campaignkit/marketing-api/internal/models"
	"go.uber.org/zap"
)

func getFeedbacks(h *FeedbackHandler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/feedbacks", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)
	return rec
}

func TestFeedbackHandler_List(t *testing.T) {
	t.Parallel()

	store := &stubFeedbackRepo{
		records: []*models.FeedbackRecord{
			{
				ID:           1,
				User:         "Dana",
				CampaignType: "summer_sale",
				Product:      "running shoes",
				Offer:        "20% off",
				Feedback:     json.RawMessage(`{"rating": 5, "comment": "loved it"}`),
				Timestamp:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			},
			{
				ID:           2,
				User:         "unknown",
				CampaignType: "launch",
				Product:      "smartwatch",
				Offer:        "free strap",
				Feedback:     json.RawMessage(`{"click_rate": 0.4}`),
				Timestamp:    time.Date(2026, 8, 2, 9, 30, 0, 0, time.UTC),
			},
		},
	}
	h := NewFeedbackHandler(store, metrics.New(), zap.NewNop())

	rec := getFeedbacks(h)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		Feedbacks []models.FeedbackRecord `json:"feedbacks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Feedbacks) != 2 {
		t.Fatalf("Expected two records, got %d", len(resp.Feedbacks))
	}
	if resp.Feedbacks[0].User != "Dana" || resp.Feedbacks[1].User != "unknown" {
		t.Errorf("Unexpected record order: %+v", resp.Feedbacks)
	}
	// Encoding compacts whitespace but must keep key order and values intact.
	if string(resp.Feedbacks[0].Feedback) != `{"rating":5,"comment":"loved it"}` {
		t.Errorf("Expected feedback blob passed through with key order intact, got %s", resp.Feedbacks[0].Feedback)
	}
}

func TestFeedbackHandler_List_Empty(t *testing.T) {
	t.Parallel()

	h := NewFeedbackHandler(&stubFeedbackRepo{}, metrics.New(), zap.NewNop())
	rec := getFeedbacks(h)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		Feedbacks []models.FeedbackRecord `json:"feedbacks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Feedbacks) != 0 {
		t.Errorf("Expected empty list, got %d records", len(resp.Feedbacks))
	}
}

func TestFeedbackHandler_List_RepositoryFailure(t *testing.T) {
	t.Parallel()

	h := NewFeedbackHandler(&stubFeedbackRepo{listErr: errors.New("query timeout")}, metrics.New(), zap.NewNop())
	rec := getFeedbacks(h)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}
	if got := decodeField(t, rec.Body.Bytes(), "error"); got != "Internal server error." {
		t.Errorf("Unexpected error body %q", got)
	}
}
