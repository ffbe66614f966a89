package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blisora/storefront/internal/checkout"
	"github.com/blisora/storefront/internal/domain"
)

type CheckoutHandler struct {
	saga *checkout.Saga
}

func NewCheckoutHandler(saga *checkout.Saga) *CheckoutHandler {
	return &CheckoutHandler{saga: saga}
}

// Begin serves the checkout page entry: the cart plus its shipping quote.
func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	page, err := h.saga.Begin(r.Context(), getSessionID(r.Context()))
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			respondError(w, http.StatusConflict, "empty_cart", "Your cart is empty")
			return
		}
		respondBackendError(w, err, "Failed to load cart")
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var draft domain.CheckoutDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.saga.Submit(r.Context(), getSessionID(r.Context()), &draft)
	if err != nil {
		var vErr *checkout.ValidationError
		if errors.As(err, &vErr) {
			respondError(w, http.StatusBadRequest, "validation_error", vErr.Error())
			return
		}
		respondBackendError(w, err, "Checkout failed")
		return
	}

	// Failed submissions come back as a result, not an error: the page
	// returns to ready with the message and keeps the draft.
	status := http.StatusCreated
	if result.State == checkout.StateFailed {
		status = http.StatusOK
	}
	respondJSON(w, status, result)
}
