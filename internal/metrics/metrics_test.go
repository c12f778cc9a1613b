package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSetRatingCounts_ReplacesStaleValues(t *testing.T) {
	t.Parallel()

	m := New()
	m.SetRatingCounts(map[string]int64{"5": 3, "1": 1})

	if got := testutil.ToFloat64(m.FeedbackRatingCount.WithLabelValues("5")); got != 3 {
		t.Errorf("Expected gauge 3 for rating 5, got %f", got)
	}

	// A refresh with rating 1 gone must not leave the old value behind.
	m.SetRatingCounts(map[string]int64{"5": 4})
	if got := testutil.ToFloat64(m.FeedbackRatingCount.WithLabelValues("5")); got != 4 {
		t.Errorf("Expected gauge 4 for rating 5, got %f", got)
	}
	if got := testutil.ToFloat64(m.FeedbackRatingCount.WithLabelValues("1")); got != 0 {
		t.Errorf("Expected rating 1 reset to 0, got %f", got)
	}
}

func TestHandler_ExposesCounters(t *testing.T) {
	t.Parallel()

	m := New()
	m.RequestCount.Inc()
	m.ErrorCount.Inc()
	m.CampaignCreated.Inc()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, metric := range []string{"request_count 1", "error_count 1", "campaign_created 1"} {
		if !strings.Contains(body, metric) {
			t.Errorf("Expected exposition to contain %q", metric)
		}
	}
}

func TestNew_InstancesAreIndependent(t *testing.T) {
	t.Parallel()

	a := New()
	b := New()
	a.RequestCount.Inc()

	if got := testutil.ToFloat64(b.RequestCount); got != 0 {
		t.Errorf("Expected independent instances, got %f on the second", got)
	}
}
