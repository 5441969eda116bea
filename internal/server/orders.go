package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ordermate/ordermate/internal/entity"
	"github.com/ordermate/ordermate/internal/repository"
)

type OrderHandler struct {
	orders repository.OrderRepository
	logger *slog.Logger
}

func NewOrderHandler(orders repository.OrderRepository, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		respondRepoError(w, err, "failed to list orders")
		return
	}
	respondJSON(w, http.StatusOK, envelope{"success": true, "orders": orders})
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	o, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		respondRepoError(w, err, "failed to fetch order")
		return
	}
	respondJSON(w, http.StatusOK, envelope{"success": true, "order": o})
}

type createOrderReq struct {
	Date      string                `json:"date"`
	Time      string                `json:"time"`
	Products  []entity.OrderProduct `json:"products"`
	Status    string                `json:"status"`
	OrderLink string                `json:"orderLink"`
	Email     string                `json:"email"`
	Name      string                `json:"name"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderReq
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Products) == 0 || req.Email == "" || req.Name == "" {
		respondError(w, http.StatusBadRequest, "products, email and name are required")
		return
	}
	if req.Status == "" {
		req.Status = entity.OrderStatusPending
	}

	o, err := h.orders.CreateOrder(r.Context(), &entity.Order{
		Date:      req.Date,
		Time:      req.Time,
		Products:  req.Products,
		Status:    req.Status,
		OrderLink: req.OrderLink,
		Email:     req.Email,
		Name:      req.Name,
	})
	if err != nil {
		respondRepoError(w, err, "failed to create order")
		return
	}
	respondJSON(w, http.StatusCreated, envelope{"success": true, "order": o})
}

type updateOrderReq struct {
	Date           *string                `json:"date"`
	Time           *string                `json:"time"`
	Products       *[]entity.OrderProduct `json:"products"`
	Status         *string                `json:"status"`
	OrderLink      *string                `json:"orderLink"`
	Email          *string                `json:"email"`
	Name           *string                `json:"name"`
	RequiresReview *bool                  `json:"requiresReview"`
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateOrderReq
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Status != nil && !validOrderStatus(*req.Status) {
		respondError(w, http.StatusBadRequest, "invalid order status")
		return
	}

	o, err := h.orders.UpdateOrder(r.Context(), id, repository.OrderUpdate{
		Date:           req.Date,
		Time:           req.Time,
		Products:       req.Products,
		Status:         req.Status,
		OrderLink:      req.OrderLink,
		Email:          req.Email,
		Name:           req.Name,
		RequiresReview: req.RequiresReview,
	})
	if err != nil {
		respondRepoError(w, err, "failed to update order")
		return
	}
	respondJSON(w, http.StatusOK, envelope{"success": true, "order": o})
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.orders.DeleteOrder(r.Context(), id); err != nil {
		respondRepoError(w, err, "failed to delete order")
		return
	}
	respondJSON(w, http.StatusOK, envelope{"success": true})
}

func validOrderStatus(s string) bool {
	switch s {
	case entity.OrderStatusPending, entity.OrderStatusConfirmed,
		entity.OrderStatusShipped, entity.OrderStatusDelivered,
		entity.OrderStatusCancelled:
		return true
	}
	return false
}

// pathID parses the {id} URL parameter, writing a 400 on malformed input.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
