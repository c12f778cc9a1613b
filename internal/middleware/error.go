package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/campaignkit/marketing-api/internal/metrics"
	"go.uber.org/zap"
)

// ErrorResponse is the generic internal-error body; internals stay in the logs
type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

// Recovery creates panic-recovery middleware. Panics are logged with detail,
// counted once, and surfaced as a generic 500.
func Recovery(logger *zap.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					m.ErrorCount.Inc()
					logger.Error("panic_recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)
					respondInternalError(w, r, logger)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func respondInternalError(w http.ResponseWriter, r *http.Request, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)

	response := ErrorResponse{
		Error:     "Internal server error.",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      r.URL.Path,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("failed_to_encode_error_response",
			zap.Error(err),
			zap.String("path", r.URL.Path),
		)
	}
}
