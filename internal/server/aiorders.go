package server

import (
	"log/slog"
	"net/http"

	"github.com/ordermate/ordermate/internal/repository"
)

// AIOrderHandler serves the dashboard's AI overview: the review queue,
// the latest pipeline-created orders, and aggregate stats.
type AIOrderHandler struct {
	orders        repository.OrderRepository
	reviewCeiling float64
	logger        *slog.Logger
}

func NewAIOrderHandler(orders repository.OrderRepository, reviewCeiling float64, logger *slog.Logger) *AIOrderHandler {
	return &AIOrderHandler{orders: orders, reviewCeiling: reviewCeiling, logger: logger}
}

func (h *AIOrderHandler) Overview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	needingReview, err := h.orders.ListOrdersNeedingReview(ctx, h.reviewCeiling, 50)
	if err != nil {
		respondRepoError(w, err, "failed to fetch AI orders")
		return
	}
	recent, err := h.orders.ListRecentAIOrders(ctx, 20)
	if err != nil {
		respondRepoError(w, err, "failed to fetch AI orders")
		return
	}
	stats, err := h.orders.AIOrderStats(ctx)
	if err != nil {
		respondRepoError(w, err, "failed to fetch AI orders")
		return
	}

	respondJSON(w, http.StatusOK, envelope{
		"success": true,
		"data": envelope{
			"ordersNeedingReview": needingReview,
			"recentAIOrders":      recent,
			"stats":               stats,
		},
	})
}
