package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blisora/storefront/internal/cart"
	"github.com/blisora/storefront/internal/domain"
)

type CartHandler struct {
	service *cart.Service
}

func NewCartHandler(service *cart.Service) *CartHandler {
	return &CartHandler{service: service}
}

type UpdateItemRequestDTO struct {
	ProductID string          `json:"productId"`
	Quantity  *int            `json:"quantity"`
	Variant   *domain.Variant `json:"variant,omitempty"`
}

// GetCart never fails page-level: load errors come back as an empty cart
// with a notice.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	view := h.service.Load(r.Context(), getSessionID(r.Context()))
	respondJSON(w, http.StatusOK, view)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "productId is required")
		return
	}
	if req.Quantity == nil {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity is required")
		return
	}

	view, err := h.service.SetQuantity(r.Context(), getSessionID(r.Context()), req.ProductID, *req.Quantity, req.Variant)
	if err != nil {
		handleCartError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func handleCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrNegativeQuantity):
		respondError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
	case errors.Is(err, cart.ErrLineBusy):
		respondError(w, http.StatusConflict, "line_busy", err.Error())
	default:
		respondBackendError(w, err, "Failed to update cart")
	}
}
