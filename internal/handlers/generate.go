package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/campaignkit/marketing-api/internal/metrics"
	"github.com/campaignkit/marketing-api/internal/services/ai"
	"github.com/campaignkit/marketing-api/internal/validation"
	"go.uber.org/zap"
)

// GenerateHandler serves the raw and templated generation endpoints
type GenerateHandler struct {
	generator *ai.Generator
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// NewGenerateHandler creates a generation handler
func NewGenerateHandler(generator *ai.Generator, logger *zap.Logger, m *metrics.Metrics) *GenerateHandler {
	return &GenerateHandler{generator: generator, logger: logger, metrics: m}
}

// PromptRequest is the raw generation request
type PromptRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// StructuredGenRequest is the templated generation request
type StructuredGenRequest struct {
	CustomerName string   `json:"customer_name" validate:"required"`
	Segments     []string `json:"segments"`
	CampaignType string   `json:"campaign_type"`
	Product      string   `json:"product" validate:"required"`
	Offer        string   `json:"offer" validate:"required"`
	MaxTokens    int      `json:"max_tokens"`
	Temperature  float64  `json:"temperature"`
}

// Generate handles POST /generate. Guardrail rejections come back as 200
// responses carrying the rejection message.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	req := PromptRequest{MaxTokens: 256, Temperature: 0.7}
	if err := decodeJSON(r, &req); err != nil {
		h.metrics.ErrorCount.Inc()
		respondValidationError(w, err)
		return
	}

	promptText := validation.SanitizeText(req.Prompt)
	result := h.generator.Generate(r.Context(), promptText, ai.GenerationParams{
		MaxNewTokens: req.MaxTokens,
		Temperature:  req.Temperature,
	})

	respondJSON(w, http.StatusOK, map[string]any{
		"response": result.Message(),
	})
}

// GenerateContent handles POST /generate-content
func (h *GenerateHandler) GenerateContent(w http.ResponseWriter, r *http.Request) {
	req := StructuredGenRequest{MaxTokens: 100, Temperature: 0.7}
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

	prompt := fmt.Sprintf(
		"Hi %s, as a %s customer, you'll love our %s! %s just for you.",
		req.CustomerName,
		strings.Join(req.Segments, ", "),
		req.Product,
		req.Offer,
	)

	result := h.generator.Generate(r.Context(), prompt, ai.GenerationParams{
		MaxNewTokens: req.MaxTokens,
		Temperature:  req.Temperature,
	})

	respondJSON(w, http.StatusOK, map[string]any{
		"generated_content": result.Message(),
	})
}
