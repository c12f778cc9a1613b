package handlers

import (
	"context"

	"github.com/campaignkit/marketing-api/internal/models"
	"github.com/campaignkit/marketing-api/internal/services/ai"
)

// stubProvider stands in for the inference backend
type stubProvider struct {
	output     string
	err        error
	calls      int
	lastPrompt string
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, params ai.GenerationParams) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.output, nil
}

// stubFeedbackRepo stands in for the feedback repository
type stubFeedbackRepo struct {
	records      []*models.FeedbackRecord
	saveErr      error
	listErr      error
	ratingCounts map[string]int64
}

func (s *stubFeedbackRepo) Save(ctx context.Context, record *models.FeedbackRecord) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	record.ID = int64(len(s.records) + 1)
	s.records = append(s.records, record)
	return nil
}

func (s *stubFeedbackRepo) All(ctx context.Context) ([]*models.FeedbackRecord, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.records, nil
}

func (s *stubFeedbackRepo) CommentsForProduct(ctx context.Context, product string) ([]string, error) {
	return nil, nil
}

func (s *stubFeedbackRepo) RatingCounts(ctx context.Context) (map[string]int64, error) {
	return s.ratingCounts, nil
}

// stubPinger stands in for the database pool in health checks
type stubPinger struct {
	err error
}

func (s *stubPinger) PingContext(ctx context.Context) error {
	return s.err
}
