package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/campaignkit/marketing-api/internal/models"
	"github.com/campaignkit/marketing-api/internal/validation"
)

// respondJSON writes a JSON body with the given status. Response shapes are
// part of the API contract, so no envelope is added.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// respondValidationError writes a client error with field-level detail
func respondValidationError(w http.ResponseWriter, err error) {
	respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"detail": validation.Details(err),
	})
}

// respondInternalError writes the generic failure body with no internals exposed
func respondInternalError(w http.ResponseWriter) {
	respondJSON(w, http.StatusInternalServerError, map[string]any{
		"error": "Internal server error.",
	})
}

// checkFeedbackRates validates the numeric feedback signals. Absent keys
// default to zero and pass; supplied values must sit inside [0,1].
func checkFeedbackRates(fb models.Feedback) []validation.FieldError {
	if fb.Empty() {
		return nil
	}
	return validation.CheckRates([]validation.RateSignal{
		{Name: "click_rate", Value: fb.ClickRate()},
		{Name: "open_rate", Value: fb.OpenRate()},
		{Name: "engagement", Value: fb.Engagement()},
	})
}

// respondFieldErrors writes a client error from pre-built field details
func respondFieldErrors(w http.ResponseWriter, details []validation.FieldError) {
	respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"detail": details,
	})
}

// decodeJSON decodes a request body into dst, which may carry defaults
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
