package handlers

import (
	"net/http"

	"github.com/campaignkit/marketing-api/internal/metrics"
	"github.com/campaignkit/marketing-api/internal/models"
	"github.com/campaignkit/marketing-api/internal/services/segment"
	"github.com/campaignkit/marketing-api/internal/validation"
)

// SegmentHandler serves the rule-based segmentation endpoint
type SegmentHandler struct {
	segmenter *segment.Segmenter
	metrics   *metrics.Metrics
}

// NewSegmentHandler creates a segmentation handler
func NewSegmentHandler(segmenter *segment.Segmenter, m *metrics.Metrics) *SegmentHandler {
	return &SegmentHandler{segmenter: segmenter, metrics: m}
}

// SegmentRequest is the segmentation request; all fields default to zero values
type SegmentRequest struct {
	Age       int      `json:"age" validate:"gte=0"`
	Interests []string `json:"interests"`
	Location  string   `json:"location"`
}

// Segment handles POST /segment
func (h *SegmentHandler) Segment(w http.ResponseWriter, r *http.Request) {
	var req SegmentRequest
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

	segments := h.segmenter.Segment(models.UserProfile{
		Age:       req.Age,
		Interests: req.Interests,
		Location:  req.Location,
	})

	respondJSON(w, http.StatusOK, map[string]any{
		"segments": segments,
	})
}
