package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/blisora/storefront/internal/backend"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// respondBackendError forwards an upstream failure's status and extracted
// message; transport-level failures surface as 502 with the fallback text.
func respondBackendError(w http.ResponseWriter, err error, fallback string) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		respondError(w, apiErr.Status, "upstream_error", apiErr.Message)
		return
	}
	respondError(w, http.StatusBadGateway, "upstream_unreachable", fallback)
}
