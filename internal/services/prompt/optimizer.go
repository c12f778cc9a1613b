package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/campaignkit/marketing-api/internal/metrics"
	"github.com/campaignkit/marketing-api/internal/models"
	"go.uber.org/zap"
)

const (
	// DefaultStrategy is the optimization strategy applied when a request omits one
	DefaultStrategy = "engagement_boost"

	// truncateLength is how much of the prompt survives a "shorten" edit
	truncateLength = 70

	noFeedbackSuffix    = " [Consider adding more personalization.]"
	shortenedSuffix     = " [Shortened based on feedback]"
	personalizedSuffix  = " [Personalized based on feedback]"
	callToActionSuffix  = " Click here to learn more or claim your offer!"
	attentionPrefix     = "📬 Important Update: "
	engagementSuffix    = " We’d love to hear your thoughts-reply now!"
	clickRateThreshold  = 0.2
	openRateThreshold   = 0.3
	engagementThreshold = 0.3
)

// CommentSource provides historical feedback comments for a product
type CommentSource interface {
	CommentsForProduct(ctx context.Context, product string) ([]string, error)
}

// Optimizer rewrites prompts based on current and historical feedback.
// Edit order is part of the contract: historical edits, then rate edits,
// then the strategy tag.
type Optimizer struct {
	store   CommentSource
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// New creates an optimizer. store may be nil when no historical lookups are wanted.
func New(store CommentSource, logger *zap.Logger, m *metrics.Metrics) *Optimizer {
	return &Optimizer{store: store, logger: logger, metrics: m}
}

// Optimize returns a revised prompt. On any internal fault it falls back to
// the original prompt unchanged.
func (o *Optimizer) Optimize(ctx context.Context, original string, feedback models.Feedback, strategy, product string) string {
	if strategy == "" {
		strategy = DefaultStrategy
	}

	if feedback.Empty() {
		o.logger.Debug("no_feedback_provided_returning_base_prompt")
		return original + noFeedbackSuffix
	}

	revised := strings.TrimSpace(original)

	if product != "" && o.store != nil {
		comments, err := o.store.CommentsForProduct(ctx, product)
		if err != nil {
			o.metrics.ErrorCount.Inc()
			o.logger.Error("failed_to_fetch_historical_feedback",
				zap.String("product", product),
				zap.Error(err),
			)
			return original
		}
		if containsFold(comments, "short") {
			revised = truncate(revised, truncateLength) + shortenedSuffix
		}
		if containsFold(comments, "personal") {
			revised += personalizedSuffix
		}
	}

	if feedback.ClickRate() < clickRateThreshold {
		revised += callToActionSuffix
	}
	if feedback.OpenRate() < openRateThreshold {
		revised = attentionPrefix + revised
	}
	if feedback.Engagement() < engagementThreshold {
		revised += engagementSuffix
	}

	revised += fmt.Sprintf(" [optimized with strategy=%s]", strategy)

	o.logger.Debug("optimized_prompt",
		zap.String("strategy", strategy),
		zap.Int("original_length", len(original)),
		zap.Int("revised_length", len(revised)),
	)

	return revised
}

// containsFold reports whether any comment contains substr, case-insensitively
func containsFold(comments []string, substr string) bool {
	for _, comment := range comments {
		if strings.Contains(strings.ToLower(comment), substr) {
			return true
		}
	}
	return false
}

// truncate cuts s to at most n characters without splitting a multi-byte rune
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
