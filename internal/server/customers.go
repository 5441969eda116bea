package server

import (
	"log/slog"
	"net/http"

	"github.com/ordermate/ordermate/internal/entity"
	"github.com/ordermate/ordermate/internal/repository"
)

type CustomerHandler struct {
	customers repository.CustomerRepository
	logger    *slog.Logger
}

func NewCustomerHandler(customers repository.CustomerRepository, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{customers: customers, logger: logger}
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.ListCustomers(r.Context())
	if err != nil {
		respondRepoError(w, err, "failed to list customers")
		return
	}
	respondJSON(w, http.StatusOK, envelope{"success": true, "customers": customers})
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := h.customers.GetCustomer(r.Context(), id)
	if err != nil {
		respondRepoError(w, err, "failed to fetch customer")
		return
	}
	respondJSON(w, http.StatusOK, envelope{"success": true, "customer": c})
}

type customerReq struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Orders     int     `json:"orders"`
	TotalSpent float64 `json:"totalSpent"`
	LastOrder  string  `json:"lastOrder"`
	Status     string  `json:"status"`
	Location   string  `json:"location"`
	JoinDate   string  `json:"joinDate"`
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req customerReq
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Email == "" {
		respondError(w, http.StatusBadRequest, "name and email are required")
		return
	}
	if req.Status == "" {
		req.Status = "active"
	}

	c, err := h.customers.CreateCustomer(r.Context(), &entity.Customer{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Orders:     req.Orders,
		TotalSpent: req.TotalSpent,
		LastOrder:  req.LastOrder,
		Status:     req.Status,
		Location:   req.Location,
		JoinDate:   req.JoinDate,
	})
	if err != nil {
		respondRepoError(w, err, "failed to create customer")
		return
	}
	respondJSON(w, http.StatusCreated, envelope{"success": true, "customer": c})
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req customerReq
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Email == "" {
		respondError(w, http.StatusBadRequest, "name and email are required")
		return
	}

	c, err := h.customers.UpdateCustomer(r.Context(), &entity.Customer{
		ID:         id,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Orders:     req.Orders,
		TotalSpent: req.TotalSpent,
		LastOrder:  req.LastOrder,
		Status:     req.Status,
		Location:   req.Location,
		JoinDate:   req.JoinDate,
	})
	if err != nil {
		respondRepoError(w, err, "failed to update customer")
		return
	}
	respondJSON(w, http.StatusOK, envelope{"success": true, "customer": c})
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.customers.DeleteCustomer(r.Context(), id); err != nil {
		respondRepoError(w, err, "failed to delete customer")
		return
	}
	respondJSON(w, http.StatusOK, envelope{"success": true})
}
