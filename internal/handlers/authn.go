package handlers

import (
	"net/http"

	"github.com/campaignkit/marketing-api/internal/auth"
	"go.uber.org/zap"
)

// AuthHandler serves token issuance
type AuthHandler struct {
	credentials *auth.CredentialStore
	tokens      *auth.TokenService
	logger      *zap.Logger
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(credentials *auth.CredentialStore, tokens *auth.TokenService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{credentials: credentials, tokens: tokens, logger: logger}
}

// Token handles POST /token: form-encoded username/password in, bearer token out
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"error": "Malformed form body",
		})
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	if !h.credentials.Authenticate(username, password) {
		h.logger.Info("login_rejected", zap.String("username", username))
		respondJSON(w, http.StatusUnauthorized, map[string]any{
			"error": "Incorrect username or password",
		})
		return
	}

	token, err := h.tokens.Issue(username)
	if err != nil {
		h.logger.Error("failed_to_issue_token", zap.Error(err))
		respondInternalError(w)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
	})
}
