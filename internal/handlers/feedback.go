package handlers

import (
	"net/http"

	"github.com/campaignkit/marketing-api/internal/database"
	"github.com/campaignkit/marketing-api/internal/metrics"
	"go.uber.org/zap"
)

// FeedbackHandler serves stored feedback records
type FeedbackHandler struct {
	repo    database.FeedbackRepositoryInterface
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewFeedbackHandler creates a feedback handler
func NewFeedbackHandler(repo database.FeedbackRepositoryInterface, m *metrics.Metrics, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{repo: repo, metrics: m, logger: logger}
}

// List handles GET /feedbacks
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	h.metrics.RequestCount.Inc()

	records, err := h.repo.All(r.Context())
	if err != nil {
		h.logger.Error("failed_to_list_feedback", zap.Error(err))
		h.metrics.ErrorCount.Inc()
		respondInternalError(w)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"feedbacks": records,
	})
}
