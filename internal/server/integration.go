package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ordermate/ordermate/internal/entity"
	"github.com/ordermate/ordermate/internal/repository"
)

// IntegrationHandler flips the account's email integration status. Actual
// mailbox authorization happens out of band; this only records which
// provider the account is linked to.
type IntegrationHandler struct {
	users  repository.UserRepository
	logger *slog.Logger
}

func NewIntegrationHandler(users repository.UserRepository, logger *slog.Logger) *IntegrationHandler {
	return &IntegrationHandler{users: users, logger: logger}
}

type connectReq struct {
	Provider string `json:"provider"`
}

func (h *IntegrationHandler) Connect(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req connectReq
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Provider == "" {
		respondError(w, http.StatusBadRequest, "provider is required")
		return
	}

	now := time.Now().UTC()
	updated, err := h.users.UpdateEmailIntegration(r.Context(), user.ID, &entity.EmailIntegration{
		IsConnected:  true,
		Provider:     req.Provider,
		LastSyncedAt: &now,
	})
	if err != nil {
		respondRepoError(w, err, "failed to connect email")
		return
	}

	h.logger.Info("email.integration.connected", "user_id", user.ID, "provider", req.Provider)
	respondJSON(w, http.StatusOK, envelope{
		"success":          true,
		"message":          req.Provider + " integration connected successfully",
		"emailIntegration": updated.EmailIntegration,
	})
}

func (h *IntegrationHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if _, err := h.users.UpdateEmailIntegration(r.Context(), user.ID, nil); err != nil {
		respondRepoError(w, err, "failed to disconnect email")
		return
	}

	h.logger.Info("email.integration.disconnected", "user_id", user.ID)
	respondJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Email integration disconnected successfully",
	})
}
