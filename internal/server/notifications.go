package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ordermate/ordermate/internal/entity"
	"github.com/ordermate/ordermate/internal/repository"
)

// NotificationHandler serves the authenticated user's email notification
// feed.
type NotificationHandler struct {
	notifications repository.EmailNotificationRepository
	logger        *slog.Logger
}

func NewNotificationHandler(notifications repository.EmailNotificationRepository, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, logger: logger}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	unreadOnly := q.Get("unreadOnly") == "true"

	result, err := h.notifications.ListNotifications(r.Context(), user.ID, page, limit, unreadOnly)
	if err != nil {
		respondRepoError(w, err, "failed to fetch notifications")
		return
	}

	respondJSON(w, http.StatusOK, envelope{
		"success":       true,
		"notifications": result.Notifications,
		"pagination": envelope{
			"currentPage":  result.Page,
			"totalPages":   result.TotalPages,
			"totalItems":   result.TotalItems,
			"itemsPerPage": result.PerPage,
		},
		"unreadCount": result.UnreadCount,
	})
}

type createNotificationReq struct {
	EmailID         string                           `json:"emailId"`
	Subject         string                           `json:"subject"`
	Sender          string                           `json:"sender"`
	ReceivedAt      time.Time                        `json:"receivedAt"`
	OrderExtracted  *entity.NotificationOrderSummary `json:"orderExtracted"`
	RawEmailContent string                           `json:"rawEmailContent"`
}

func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createNotificationReq
	if !decodeBody(w, r, &req) {
		return
	}
	if req.EmailID == "" || req.Subject == "" || req.Sender == "" || req.ReceivedAt.IsZero() {
		respondError(w, http.StatusBadRequest, "emailId, subject, sender and receivedAt are required")
		return
	}

	saved, err := h.notifications.CreateNotification(r.Context(), &entity.EmailNotification{
		UserID:          user.ID,
		EmailID:         req.EmailID,
		Subject:         req.Subject,
		Sender:          req.Sender,
		ReceivedAt:      req.ReceivedAt,
		OrderExtracted:  req.OrderExtracted,
		RawEmailContent: req.RawEmailContent,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotificationExists) {
			respondError(w, http.StatusConflict, "notification already exists for this email")
			return
		}
		respondRepoError(w, err, "failed to create notification")
		return
	}

	respondJSON(w, http.StatusCreated, envelope{
		"success":      true,
		"notification": saved,
		"message":      "Email notification created successfully",
	})
}
