package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/warp/portal/storage"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Message: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// statusFor maps the storage error taxonomy onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, storage.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrUnsupported):
		return http.StatusMethodNotAllowed
	case errors.Is(err, storage.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// writeStoreError writes err with its mapped status. Client errors carry
// their own message; validation failures list every problem.
func writeStoreError(w http.ResponseWriter, err error) {
	status := statusFor(err)

	var ve *storage.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, status, ErrorResponse{Message: "Invalid " + ve.Entity, Details: ve.Problems})
	case status < http.StatusInternalServerError:
		writeJSON(w, status, ErrorResponse{Message: err.Error()})
	case status == http.StatusBadGateway:
		writeError(w, status, "Upstream content service unavailable", err)
	default:
		writeError(w, status, "Internal server error", err)
	}
}
