package backend

import (
	"errors"
	"fmt"
)

var ErrOrderNotFound = errors.New("order not found")

// APIError carries the HTTP status and the human message extracted from a
// non-2xx response body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.Status)
}

// ErrorMessage returns the user-facing message for a failed call, or the
// fallback for transport-level failures that carry no server message.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
