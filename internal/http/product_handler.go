package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blisora/storefront/internal/catalog"
	"github.com/blisora/storefront/internal/domain"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	service *catalog.Service
}

func NewProductHandler(service *catalog.Service) *ProductHandler {
	return &ProductHandler{service: service}
}

type AddItemRequestDTO struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	audience := domain.Audience(r.URL.Query().Get("audience"))

	listings, applied, err := h.service.List(r.Context(), getSessionID(r.Context()), query, audience)
	if err != nil {
		// A superseded search was aborted by a newer one; the result is
		// simply abandoned.
		if errors.Is(err, context.Canceled) {
			respondError(w, http.StatusConflict, "superseded", "search superseded by a newer request")
			return
		}
		respondBackendError(w, err, "Failed to load products")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"products": listings,
		"audience": applied,
	})
}

func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.service.BySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Product not found")
			return
		}
		respondBackendError(w, err, "Failed to load product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "productId is required")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	cart, err := h.service.AddToCart(r.Context(), getSessionID(r.Context()), req.ProductID, req.Quantity)
	if err != nil {
		respondBackendError(w, err, "Failed to add to cart")
		return
	}
	respondJSON(w, http.StatusCreated, cart)
}
