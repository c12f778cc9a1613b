package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/campaignkit/marketing-api/internal/models"
)

// FeedbackRepositoryInterface defines the feedback store operations.
// This interface enables mock implementations in tests.
type FeedbackRepositoryInterface interface {
	Save(ctx context.Context, record *models.FeedbackRecord) error
	All(ctx context.Context) ([]*models.FeedbackRecord, error)
	CommentsForProduct(ctx context.Context, product string) ([]string, error)
	RatingCounts(ctx context.Context) (map[string]int64, error)
}

// FeedbackRepository handles feedback database operations
type FeedbackRepository struct {
	db *DB
}

var _ FeedbackRepositoryInterface = (*FeedbackRepository)(nil)

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Save appends a feedback record. The feedback blob goes in verbatim; the
// row ID and timestamp come back from the database.
func (r *FeedbackRepository) Save(ctx context.Context, record *models.FeedbackRecord) error {
	query := `
		INSERT INTO feedback ("user", campaign_type, product, offer, feedback)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, timestamp
	`

	// string, not []byte: lib/pq would hex-encode a byte slice as bytea,
	// and the column is TEXT
	err := r.db.QueryRowContext(ctx, query,
		record.User,
		record.CampaignType,
		record.Product,
		record.Offer,
		string(record.Feedback),
	).Scan(&record.ID, &record.Timestamp)

	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}

	return nil
}

// All retrieves every feedback record in insertion order
func (r *FeedbackRepository) All(ctx context.Context) ([]*models.FeedbackRecord, error) {
	query := `
		SELECT id, "user", campaign_type, product, offer, feedback, timestamp
		FROM feedback
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	records := make([]*models.FeedbackRecord, 0)
	for rows.Next() {
		record := &models.FeedbackRecord{}
		var blob []byte
		if err := rows.Scan(
			&record.ID,
			&record.User,
			&record.CampaignType,
			&record.Product,
			&record.Offer,
			&blob,
			&record.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		record.Feedback = json.RawMessage(blob)
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feedback rows: %w", err)
	}

	return records, nil
}

// CommentsForProduct returns the comment strings of every stored feedback
// blob for a product. Blobs without a textual comment are skipped.
func (r *FeedbackRepository) CommentsForProduct(ctx context.Context, product string) ([]string, error) {
	query := `SELECT feedback FROM feedback WHERE product = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, product)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback for product: %w", err)
	}
	defer rows.Close()

	var comments []string
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, fmt.Errorf("failed to scan feedback blob: %w", err)
		}
		comments = append(comments, extractComment(blob)...)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feedback blobs: %w", err)
	}

	return comments, nil
}

// ratingCountsQuery casts the TEXT blob to jsonb before inspecting it,
// since the column itself carries the submitted bytes unmodified.
const ratingCountsQuery = `
	SELECT feedback::jsonb->>'rating', COUNT(*)
	FROM feedback
	WHERE feedback::jsonb ? 'rating'
	GROUP BY feedback::jsonb->>'rating'
`

// RatingCounts groups stored feedback by the rating key inside the blob
func (r *FeedbackRepository) RatingCounts(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx, ratingCountsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query rating counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var rating string
		var count int64
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, fmt.Errorf("failed to scan rating count: %w", err)
		}
		counts[rating] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rating counts: %w", err)
	}

	return counts, nil
}

// extractComment pulls the comment field out of a stored feedback blob
func extractComment(blob []byte) []string {
	var fb models.Feedback
	if err := json.Unmarshal(blob, &fb); err != nil {
		return nil
	}
	if c := fb.Comment(); c != "" {
		return []string{c}
	}
	return nil
}
