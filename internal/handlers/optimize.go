package handlers

import (
	"net/http"

	"github.com/campaignkit/marketing-api/internal/metrics"
	"github.com/campaignkit/marketing-api/internal/models"
	"github.com/campaignkit/marketing-api/internal/services/prompt"
	"github.com/campaignkit/marketing-api/internal/validation"
)

// OptimizeHandler serves the standalone prompt-optimization endpoint
type OptimizeHandler struct {
	optimizer *prompt.Optimizer
	metrics   *metrics.Metrics
}

// NewOptimizeHandler creates an optimization handler
func NewOptimizeHandler(optimizer *prompt.Optimizer, m *metrics.Metrics) *OptimizeHandler {
	return &OptimizeHandler{optimizer: optimizer, metrics: m}
}

// OptimizationRequest is the prompt-optimization request
type OptimizationRequest struct {
	OriginalPrompt string          `json:"original_prompt" validate:"required"`
	Feedback       models.Feedback `json:"feedback"`
	Strategy       string          `json:"strategy"`
}

// Optimize handles POST /optimize. No product context here; historical
// feedback edits only apply during campaign creation.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	h.metrics.RequestCount.Inc()

	req := OptimizationRequest{Strategy: prompt.DefaultStrategy}
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
	if details := checkFeedbackRates(req.Feedback); len(details) > 0 {
		h.metrics.ErrorCount.Inc()
		respondFieldErrors(w, details)
		return
	}

	promptText := validation.SanitizeText(req.OriginalPrompt)
	optimized := h.optimizer.Optimize(r.Context(), promptText, req.Feedback, req.Strategy, "")

	respondJSON(w, http.StatusOK, map[string]any{
		"optimized_prompt": optimized,
	})
}
