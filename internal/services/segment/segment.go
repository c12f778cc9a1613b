package segment

import (
	"strings"

	"github.com/campaignkit/marketing-api/internal/metrics"
	"github.com/campaignkit/marketing-api/internal/models"
	"go.uber.org/zap"
)

// interestRule maps a keyword set to the segment it tags
type interestRule struct {
	segment  models.Segment
	keywords []string
}

// Interest rules are evaluated in this order; each appends independently.
var interestRules = []interestRule{
	{models.SegmentFashionEnthusiast, []string{"fashion", "beauty", "style"}},
	{models.SegmentFitnessEnthusiast, []string{"fitness", "wellness", "gym", "health"}},
	{models.SegmentTechSavvy, []string{"tech", "gadgets", "ai", "machine learning"}},
	{models.SegmentBookLover, []string{"reading", "books", "literature"}},
}

var locationSegments = map[string]models.Segment{
	"urban":    models.SegmentUrbanDweller,
	"suburban": models.SegmentSuburbanResident,
	"rural":    models.SegmentRuralExplorer,
}

// Segmenter derives demographic and interest segments from a user profile.
// Segmentation is a pure function of the profile; the segmenter itself only
// carries observability dependencies.
type Segmenter struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// New creates a segmenter
func New(logger *zap.Logger, m *metrics.Metrics) *Segmenter {
	return &Segmenter{logger: logger, metrics: m}
}

// Segment maps a profile to its ordered segment list: exactly one age
// bracket, then any matching interest tags, then at most one dweller tag.
func (s *Segmenter) Segment(profile models.UserProfile) []models.Segment {
	s.metrics.RequestCount.Inc()

	segments := make([]models.Segment, 0, 4)

	switch {
	case profile.Age < 25:
		segments = append(segments, models.SegmentGenZ)
	case profile.Age < 40:
		segments = append(segments, models.SegmentMillennial)
	default:
		segments = append(segments, models.SegmentGenXPlus)
	}

	interests := make(map[string]bool, len(profile.Interests))
	for _, interest := range profile.Interests {
		interests[strings.ToLower(interest)] = true
	}
	for _, rule := range interestRules {
		for _, keyword := range rule.keywords {
			if interests[keyword] {
				segments = append(segments, rule.segment)
				break
			}
		}
	}

	if dweller, ok := locationSegments[strings.ToLower(profile.Location)]; ok {
		segments = append(segments, dweller)
	}

	s.logger.Debug("segmented_user",
		zap.Int("age", profile.Age),
		zap.Int("interest_count", len(profile.Interests)),
		zap.Int("segment_count", len(segments)),
	)

	return segments
}

// Labels joins segments for prompt templating, falling back to the generic term
func Labels(segments []models.Segment) string {
	if len(segments) == 0 {
		return "valued"
	}
	labels := make([]string, len(segments))
	for i, seg := range segments {
		labels[i] = string(seg)
	}
	return strings.Join(labels, ", ")
}
