package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/campaignkit/marketing-api/internal/metrics"
	"github.com/campaignkit/marketing-api/internal/models"
	"github.com/campaignkit/marketing-api/internal/request"
	"github.com/campaignkit/marketing-api/internal/services/campaign"
	"github.com/campaignkit/marketing-api/internal/validation"
	"go.uber.org/zap"
)

// CampaignHandler serves the authenticated campaign-creation endpoint
type CampaignHandler struct {
	service *campaign.Service
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewCampaignHandler creates a campaign handler
func NewCampaignHandler(service *campaign.Service, logger *zap.Logger, m *metrics.Metrics) *CampaignHandler {
	return &CampaignHandler{service: service, logger: logger, metrics: m}
}

// CampaignRequest is the campaign-creation request. Feedback is kept as raw
// bytes so the persisted blob matches the request exactly. The profile is a
// pointer so that a missing key is rejected while an empty profile, which
// segments as a young anonymous customer, still passes.
type CampaignRequest struct {
	CustomerProfile *models.UserProfile `json:"customer_profile" validate:"required"`
	CampaignType    string             `json:"campaign_type" validate:"required"`
	Product         string             `json:"product" validate:"required"`
	Offer           string             `json:"offer" validate:"required"`
	Feedback        json.RawMessage    `json:"feedback"`
	MaxTokens       int                `json:"max_tokens"`
	Temperature     float64            `json:"temperature"`
}

// CreateCampaign handles POST /create-campaign
func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	req := CampaignRequest{MaxTokens: 100, Temperature: 0.7}
	if err := decodeJSON(r, &req); err != nil {
		h.metrics.ErrorCount.Inc()
		respondValidationError(w, err)
		return
	}
	if err := validation.Validate.Struct(req); err != nil {
		h.metrics.ErrorCount.Inc()
		respondValidationError(w, err)
		return
	}

	var feedback models.Feedback
	if len(req.Feedback) > 0 {
		if err := json.Unmarshal(req.Feedback, &feedback); err != nil {
			h.metrics.ErrorCount.Inc()
			respondValidationError(w, err)
			return
		}
	}
	if details := checkFeedbackRates(feedback); len(details) > 0 {
		h.metrics.ErrorCount.Inc()
		respondFieldErrors(w, details)
		return
	}

	result, err := h.service.Create(r.Context(), campaign.CreateParams{
		Profile:      *req.CustomerProfile,
		CampaignType: req.CampaignType,
		Product:      req.Product,
		Offer:        req.Offer,
		Feedback:     feedback,
		RawFeedback:  req.Feedback,
		MaxTokens:    req.MaxTokens,
		Temperature:  req.Temperature,
	})
	if err != nil {
		h.logger.Error("campaign_creation_failed",
			zap.String("principal", request.Principal(r)),
			zap.Error(err),
		)
		respondInternalError(w)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"generated_content": result.Message(),
	})
}
