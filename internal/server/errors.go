package server

import (
	"log/slog"
	"net/http"

	"github.com/ordermate/ordermate/internal/entity"
	"github.com/ordermate/ordermate/internal/repository"
)

type ErrorLogHandler struct {
	errs   repository.ErrorLogRepository
	logger *slog.Logger
}

func NewErrorLogHandler(errs repository.ErrorLogRepository, logger *slog.Logger) *ErrorLogHandler {
	return &ErrorLogHandler{errs: errs, logger: logger}
}

func (h *ErrorLogHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.errs.ListErrors(r.Context())
	if err != nil {
		respondRepoError(w, err, "failed to list errors")
		return
	}
	respondJSON(w, http.StatusOK, envelope{"success": true, "errors": items})
}

type errorLogReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Category    string `json:"category"`
	Frequency   int    `json:"frequency"`
}

func (h *ErrorLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req errorLogReq
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == "" || req.Description == "" {
		respondError(w, http.StatusBadRequest, "title and description are required")
		return
	}
	switch req.Severity {
	case entity.SeverityLow, entity.SeverityMedium, entity.SeverityHigh, entity.SeverityCritical:
	default:
		respondError(w, http.StatusBadRequest, "invalid severity")
		return
	}
	if req.Frequency <= 0 {
		req.Frequency = 1
	}

	e, err := h.errs.CreateError(r.Context(), &entity.ErrorLog{
		Title:       req.Title,
		Description: req.Description,
		Severity:    req.Severity,
		Status:      entity.ErrorStatusActive,
		Category:    req.Category,
		Frequency:   req.Frequency,
	})
	if err != nil {
		respondRepoError(w, err, "failed to record error")
		return
	}
	respondJSON(w, http.StatusCreated, envelope{"success": true, "error": e})
}

type errorStatusReq struct {
	Status string `json:"status"`
}

func (h *ErrorLogHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req errorStatusReq
	if !decodeBody(w, r, &req) {
		return
	}
	switch req.Status {
	case entity.ErrorStatusActive, entity.ErrorStatusInvestigating,
		entity.ErrorStatusMonitoring, entity.ErrorStatusResolved:
	default:
		respondError(w, http.StatusBadRequest, "invalid error status")
		return
	}

	e, err := h.errs.UpdateErrorStatus(r.Context(), id, req.Status)
	if err != nil {
		respondRepoError(w, err, "failed to update error")
		return
	}
	respondJSON(w, http.StatusOK, envelope{"success": true, "error": e})
}
