package server

import (
	"log/slog"
	"net/http"

	"github.com/ordermate/ordermate/internal/entity"
	"github.com/ordermate/ordermate/internal/repository"
)

type ProductHandler struct {
	products repository.ProductRepository
	logger   *slog.Logger
}

func NewProductHandler(products repository.ProductRepository, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		respondRepoError(w, err, "failed to list products")
		return
	}
	respondJSON(w, http.StatusOK, envelope{"success": true, "products": products})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		respondRepoError(w, err, "failed to fetch product")
		return
	}
	respondJSON(w, http.StatusOK, envelope{"success": true, "product": p})
}

type productReq struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	SKU         string  `json:"sku"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Category == "" {
		respondError(w, http.StatusBadRequest, "name and category are required")
		return
	}
	if req.Price < 0 || req.Quantity < 0 {
		respondError(w, http.StatusBadRequest, "price and quantity must be non-negative")
		return
	}

	p, err := h.products.CreateProduct(r.Context(), &entity.Product{
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Status:      entity.StockStatus(req.Quantity),
	})
	if err != nil {
		respondRepoError(w, err, "failed to create product")
		return
	}
	respondJSON(w, http.StatusCreated, envelope{"success": true, "product": p})
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req productReq
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Category == "" {
		respondError(w, http.StatusBadRequest, "name and category are required")
		return
	}
	if req.Price < 0 || req.Quantity < 0 {
		respondError(w, http.StatusBadRequest, "price and quantity must be non-negative")
		return
	}

	p, err := h.products.UpdateProduct(r.Context(), &entity.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Status:      entity.StockStatus(req.Quantity),
	})
	if err != nil {
		respondRepoError(w, err, "failed to update product")
		return
	}
	respondJSON(w, http.StatusOK, envelope{"success": true, "product": p})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.products.DeleteProduct(r.Context(), id); err != nil {
		respondRepoError(w, err, "failed to delete product")
		return
	}
	respondJSON(w, http.StatusOK, envelope{"success": true})
}
