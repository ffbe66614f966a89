package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blisora/storefront/internal/payment"
	"github.com/go-chi/chi/v5"
)

type PaymentHandler struct {
	service *payment.Service
}

func NewPaymentHandler(service *payment.Service) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// GetSummary rebuilds the order summary from the session echo. A missing
// order id or echo is terminal for the page; the server order is never
// re-fetched here.
func (h *PaymentHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	summary, err := h.service.Load(r.Context(), getSessionID(r.Context()), orderID)
	if err != nil {
		if errors.Is(err, payment.ErrNoOrder) || errors.Is(err, payment.ErrNoOrderEcho) {
			respondError(w, http.StatusConflict, "missing_order_state", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to load order details")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *PaymentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	var form payment.CardForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.service.Submit(r.Context(), getSessionID(r.Context()), orderID, form)
	if err != nil {
		handlePaymentError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func handlePaymentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, payment.ErrNoOrder), errors.Is(err, payment.ErrNoOrderEcho):
		respondError(w, http.StatusConflict, "missing_order_state", err.Error())
	case errors.Is(err, payment.ErrCardFieldsMissing),
		errors.Is(err, payment.ErrCardNumberInvalid),
		errors.Is(err, payment.ErrCVCInvalid):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	default:
		respondBackendError(w, err, "Payment failed")
	}
}
