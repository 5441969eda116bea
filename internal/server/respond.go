package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ordermate/ordermate/internal/common"
	"github.com/ordermate/ordermate/internal/repository"
)

// envelope is the JSON response shape every handler emits; the dashboard
// front end keys off the success flag.
type envelope map[string]any

func respondJSON(w http.ResponseWriter, status int, v envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, envelope{"success": false, "error": message})
}

// respondRepoError maps repository/domain errors onto HTTP statuses.
func respondRepoError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, common.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, repository.ErrEmailTaken):
		respondError(w, http.StatusConflict, "email already registered")
	default:
		respondError(w, http.StatusInternalServerError, fallback)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
