package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Feedback is the free-form performance signal submitted with a campaign.
// Known keys (click_rate, open_rate, engagement, rating, comment) get typed
// accessors; anything else rides along untouched. The raw request bytes are
// what gets persisted, so stored blobs keep their exact key order and values.
type Feedback map[string]any

// Empty reports whether no feedback was supplied
func (f Feedback) Empty() bool {
	return len(f) == 0
}

// rate reads a numeric key, defaulting to 0.0 when absent or non-numeric
func (f Feedback) rate(key string) float64 {
	switch v := f[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return 0.0
		}
		return n
	default:
		return 0.0
	}
}

// ClickRate returns the click_rate signal, defaulting to 0.0
func (f Feedback) ClickRate() float64 { return f.rate("click_rate") }

// OpenRate returns the open_rate signal, defaulting to 0.0
func (f Feedback) OpenRate() float64 { return f.rate("open_rate") }

// Engagement returns the engagement signal, defaulting to 0.0
func (f Feedback) Engagement() float64 { return f.rate("engagement") }

// Comment returns the free-text comment, or "" when absent
func (f Feedback) Comment() string {
	if c, ok := f["comment"].(string); ok {
		return c
	}
	return ""
}

// Rating returns the rating rendered as a label value, and whether one was given.
// Ratings arrive as JSON numbers or strings depending on the client.
func (f Feedback) Rating() (string, bool) {
	switch v := f["rating"].(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v)), true
		}
		return fmt.Sprintf("%g", v), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}

// FeedbackRecord is one row of the append-only feedback table. The feedback
// blob is stored and returned verbatim.
type FeedbackRecord struct {
	ID           int64           `json:"id"`
	User         string          `json:"user"`
	CampaignType string          `json:"campaign_type"`
	Product      string          `json:"product"`
	Offer        string          `json:"offer"`
	Feedback     json.RawMessage `json:"feedback"`
	Timestamp    time.Time       `json:"timestamp"`
}
