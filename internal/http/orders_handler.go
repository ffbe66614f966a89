package http

import (
	"errors"
	"net/http"

	"github.com/blisora/storefront/internal/confirmation"
)

type OrdersHandler struct {
	service *confirmation.Service
}

func NewOrdersHandler(service *confirmation.Service) *OrdersHandler {
	return &OrdersHandler{service: service}
}

// Confirm loads the order named by the orderRef parameter, consuming the
// persisted checkout draft for the guest ownership check.
func (h *OrdersHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	orderRef := r.URL.Query().Get("orderRef")

	view, err := h.service.Load(r.Context(), getSessionID(r.Context()), orderRef)
	if err != nil {
		handleOrderLookupError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Track is the standalone reference+contact lookup.
func (h *OrdersHandler) Track(w http.ResponseWriter, r *http.Request) {
	orderRef := r.URL.Query().Get("orderRef")
	contact := r.URL.Query().Get("contact")

	view, err := h.service.Track(r.Context(), orderRef, contact)
	if err != nil {
		handleOrderLookupError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func handleOrderLookupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, confirmation.ErrMissingRef):
		respondError(w, http.StatusBadRequest, "missing_order_ref", err.Error())
	case errors.Is(err, confirmation.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", "Order not found")
	default:
		respondBackendError(w, err, "Failed to load order details")
	}
}
