package handlers

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/campaignkit/marketing-api/internal/metrics"
	"github.com/campaignkit/marketing-api/internal/services/ai"
	"github.com/campaignkit/marketing-api/internal/services/campaign"
	"github.com/campaignkit/marketing-api/internal/services/prompt"
	"github.com/campaignkit/marketing-api/internal/services/segment"
	"go.uber.org/zap"
)

func newCampaignHandler(store *stubFeedbackRepo, provider ai.TextGenerator) *CampaignHandler {
	log := zap.NewNop()
	m := metrics.New()
	svc := campaign.NewService(
		segment.New(log, m),
		prompt.New(store, log, m),
		ai.NewGenerator(provider, log, m),
		store,
		log,
		m,
	)
	return NewCampaignHandler(svc, log, m)
}

func TestCampaignHandler_CreateCampaign(t *testing.T) {
	t.Parallel()

	store := &stubFeedbackRepo{}
	provider := &stubProvider{output: "Gear up for summer with 20% off every pair in store."}
	h := newCampaignHandler(store, provider)

	body := `{
		"customer_profile": {"name": "Dana", "age": 30, "interests": ["fitness"], "location": "urban"},
		"campaign_type": "summer_sale",
		"product": "running shoes",
		"offer": "20% off"
	}`
	rec := postJSON(h.CreateCampaign, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	got := decodeField(t, rec.Body.Bytes(), "generated_content")
	if got != "Gear up for summer with 20% off every pair in store." {
		t.Errorf("Unexpected content %q", got)
	}
	if len(store.records) != 0 {
		t.Errorf("Expected no feedback stored without a feedback payload, got %d records", len(store.records))
	}
}

func TestCampaignHandler_CreateCampaign_PersistsFeedback(t *testing.T) {
	t.Parallel()

	store := &stubFeedbackRepo{ratingCounts: map[string]int64{"5": 1}}
	provider := &stubProvider{output: "Gear up for summer with 20% off every pair in store."}
	h := newCampaignHandler(store, provider)

	body := `{
		"customer_profile": {"name": "Dana", "age": 30},
		"campaign_type": "summer_sale",
		"product": "running shoes",
		"offer": "20% off",
		"feedback": {"rating": 5, "comment": "loved it"}
	}`
	rec := postJSON(h.CreateCampaign, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(store.records) != 1 {
		t.Fatalf("Expected one stored record, got %d", len(store.records))
	}
	if string(store.records[0].Feedback) != `{"rating": 5, "comment": "loved it"}` {
		t.Errorf("Expected verbatim feedback bytes, got %s", store.records[0].Feedback)
	}
}

// An empty profile object is a legitimate anonymous customer. Only an
// absent customer_profile key is a validation failure.
func TestCampaignHandler_CreateCampaign_EmptyProfileAccepted(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{output: "Fresh kicks for everyone this season."}
	h := newCampaignHandler(&stubFeedbackRepo{}, provider)

	body := `{
		"customer_profile": {},
		"campaign_type": "summer_sale",
		"product": "running shoes",
		"offer": "20% off"
	}`
	rec := postJSON(h.CreateCampaign, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 for empty profile, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(provider.lastPrompt, "Hi Customer, as a GenZ customer") {
		t.Errorf("Expected anonymous profile prompt, got %q", provider.lastPrompt)
	}
}

func TestCampaignHandler_CreateCampaign_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"missing product", `{"customer_profile": {"name": "Dana", "age": 30}, "campaign_type": "sale", "offer": "20% off"}`},
		{"missing campaign type", `{"customer_profile": {"name": "Dana", "age": 30}, "product": "shoes", "offer": "20% off"}`},
		{"missing profile", `{"campaign_type": "sale", "product": "shoes", "offer": "20% off"}`},
		{"malformed feedback", `{"customer_profile": {"name": "Dana", "age": 30}, "campaign_type": "sale", "product": "shoes", "offer": "20% off", "feedback": "not-an-object"}`},
		{"click rate above one", `{"customer_profile": {"name": "Dana", "age": 30}, "campaign_type": "sale", "product": "shoes", "offer": "20% off", "feedback": {"click_rate": 1.5}}`},
		{"negative engagement", `{"customer_profile": {"name": "Dana", "age": 30}, "campaign_type": "sale", "product": "shoes", "offer": "20% off", "feedback": {"engagement": -0.2}}`},
		{"malformed json", `{"customer_profile": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newCampaignHandler(&stubFeedbackRepo{}, &stubProvider{output: "unused"})
			rec := postJSON(h.CreateCampaign, tt.body)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("Expected 422, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCampaignHandler_CreateCampaign_StoreFailure(t *testing.T) {
	t.Parallel()

	store := &stubFeedbackRepo{saveErr: errors.New("connection refused")}
	h := newCampaignHandler(store, &stubProvider{output: "unused"})

	body := `{
		"customer_profile": {"name": "Dana", "age": 30},
		"campaign_type": "summer_sale",
		"product": "running shoes",
		"offer": "20% off",
		"feedback": {"comment": "fine"}
	}`
	rec := postJSON(h.CreateCampaign, body)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}
	if got := decodeField(t, rec.Body.Bytes(), "error"); got != "Internal server error." {
		t.Errorf("Unexpected error body %q", got)
	}
}

func TestCampaignHandler_CreateCampaign_InferenceFaultStaysOK(t *testing.T) {
	t.Parallel()

	h := newCampaignHandler(&stubFeedbackRepo{}, &stubProvider{err: errors.New("model server down")})

	body := `{
		"customer_profile": {"name": "Dana", "age": 30},
		"campaign_type": "summer_sale",
		"product": "running shoes",
		"offer": "20% off"
	}`
	rec := postJSON(h.CreateCampaign, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 for guardrail rejection, got %d", rec.Code)
	}
	if got := decodeField(t, rec.Body.Bytes(), "generated_content"); got != "[Error] Exception during generation." {
		t.Errorf("Unexpected content %q", got)
	}
}
