package campaign

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/campaignkit/marketing-api/internal/metrics"
	"github.com/campaignkit/marketing-api/internal/models"
	"github.com/campaignkit/marketing-api/internal/services/ai"
	"github.com/campaignkit/marketing-api/internal/services/prompt"
	"github.com/campaignkit/marketing-api/internal/services/segment"
	"go.uber.org/zap"
)

// ErrCampaignFailed is the single failure outcome campaign creation exposes.
// Which stage failed is logged, not surfaced.
var ErrCampaignFailed = errors.New("campaign creation failed")

// FeedbackStore is the subset of the feedback repository the orchestrator needs
type FeedbackStore interface {
	Save(ctx context.Context, record *models.FeedbackRecord) error
	RatingCounts(ctx context.Context) (map[string]int64, error)
}

// CreateParams carry one campaign-creation request through the pipeline
type CreateParams struct {
	Profile      models.UserProfile
	CampaignType string
	Product      string
	Offer        string
	// Feedback is the decoded signal used for prompt optimization
	Feedback models.Feedback
	// RawFeedback is the verbatim request bytes persisted to the store
	RawFeedback json.RawMessage
	MaxTokens   int
	Temperature float64
}

// Service composes segmentation, prompt templating, optimization, and
// generation into the create-campaign operation.
type Service struct {
	segmenter *segment.Segmenter
	optimizer *prompt.Optimizer
	generator *ai.Generator
	store     FeedbackStore
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// NewService creates the campaign orchestrator
func NewService(
	segmenter *segment.Segmenter,
	optimizer *prompt.Optimizer,
	generator *ai.Generator,
	store FeedbackStore,
	logger *zap.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		segmenter: segmenter,
		optimizer: optimizer,
		generator: generator,
		store:     store,
		logger:    logger,
		metrics:   m,
	}
}

// Create runs the strictly sequential pipeline: persist feedback (side
// effect), segment, template, optimize, generate. Any stage fault collapses
// into ErrCampaignFailed.
func (s *Service) Create(ctx context.Context, params CreateParams) (ai.Result, error) {
	if !params.Feedback.Empty() {
		if err := s.saveFeedback(ctx, params); err != nil {
			s.metrics.ErrorCount.Inc()
			s.logger.Error("failed_to_persist_feedback",
				zap.String("product", params.Product),
				zap.Error(err),
			)
			return ai.Result{}, ErrCampaignFailed
		}
	}

	segments := s.segmenter.Segment(params.Profile)

	basePrompt := fmt.Sprintf(
		"Hi %s, as a %s customer, you'll love our %s! %s just for you. This is part of our %s campaign.",
		params.Profile.DisplayName(),
		segment.Labels(segments),
		params.Product,
		params.Offer,
		params.CampaignType,
	)

	finalPrompt := s.optimizer.Optimize(ctx, basePrompt, params.Feedback, prompt.DefaultStrategy, params.Product)

	result := s.generator.Generate(ctx, finalPrompt, ai.GenerationParams{
		MaxNewTokens: params.MaxTokens,
		Temperature:  params.Temperature,
	})

	s.metrics.CampaignCreated.Inc()
	s.logger.Info("campaign_created",
		zap.String("user", params.Profile.DisplayName()),
		zap.String("campaign_type", params.CampaignType),
		zap.String("product", params.Product),
		zap.Bool("rejected", result.Rejected()),
	)

	return result, nil
}

// saveFeedback appends the feedback record and refreshes the rating gauge
func (s *Service) saveFeedback(ctx context.Context, params CreateParams) error {
	raw := params.RawFeedback
	if raw == nil {
		encoded, err := json.Marshal(params.Feedback)
		if err != nil {
			return fmt.Errorf("failed to encode feedback: %w", err)
		}
		raw = encoded
	}

	user := params.Profile.Name
	if user == "" {
		user = "unknown"
	}

	record := &models.FeedbackRecord{
		User:         user,
		CampaignType: params.CampaignType,
		Product:      params.Product,
		Offer:        params.Offer,
		Feedback:     raw,
	}
	if err := s.store.Save(ctx, record); err != nil {
		return err
	}

	if _, ok := params.Feedback.Rating(); ok {
		counts, err := s.store.RatingCounts(ctx)
		if err != nil {
			// Stale gauge values are tolerable; the record itself is saved.
			s.logger.Warn("failed_to_refresh_rating_counts", zap.Error(err))
			return nil
		}
		s.metrics.SetRatingCounts(counts)
	}

	return nil
}
