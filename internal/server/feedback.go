package server

import (
	"log/slog"
	"net/http"

	"github.com/ordermate/ordermate/internal/entity"
	"github.com/ordermate/ordermate/internal/repository"
)

type FeedbackHandler struct {
	feedback repository.FeedbackRepository
	logger   *slog.Logger
}

func NewFeedbackHandler(feedback repository.FeedbackRepository, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback, logger: logger}
}

func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.feedback.ListFeedback(r.Context())
	if err != nil {
		respondRepoError(w, err, "failed to list feedback")
		return
	}
	respondJSON(w, http.StatusOK, envelope{"success": true, "feedback": items})
}

type feedbackReq struct {
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Category string `json:"category"`
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req feedbackReq
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		respondError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}
	if req.Category == "" {
		req.Category = "general"
	}

	f, err := h.feedback.CreateFeedback(r.Context(), &entity.Feedback{
		Rating:   req.Rating,
		Comment:  req.Comment,
		Status:   entity.FeedbackStatusPending,
		Category: req.Category,
	})
	if err != nil {
		respondRepoError(w, err, "failed to create feedback")
		return
	}
	respondJSON(w, http.StatusCreated, envelope{"success": true, "feedback": f})
}

type feedbackStatusReq struct {
	Status string `json:"status"`
}

func (h *FeedbackHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req feedbackStatusReq
	if !decodeBody(w, r, &req) {
		return
	}
	switch req.Status {
	case entity.FeedbackStatusPending, entity.FeedbackStatusInReview, entity.FeedbackStatusResolved:
	default:
		respondError(w, http.StatusBadRequest, "invalid feedback status")
		return
	}

	f, err := h.feedback.UpdateFeedbackStatus(r.Context(), id, req.Status)
	if err != nil {
		respondRepoError(w, err, "failed to update feedback")
		return
	}
	respondJSON(w, http.StatusOK, envelope{"success": true, "feedback": f})
}
