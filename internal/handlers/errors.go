package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/finance-flow/internal/services"
)

// ErrorResponse represents an error response
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: invalid amount: must be positive
	Error string `json:"error"`
}

// statusFor maps a service error to an HTTP status and a client-safe message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, services.ErrNotFound.Error()
	case errors.Is(err, services.ErrAlreadyApproved):
		return http.StatusConflict, services.ErrAlreadyApproved.Error()
	case errors.Is(err, services.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, services.ErrStorageUnavailable.Error()
	case errors.Is(err, services.ErrAttachmentWrite):
		return http.StatusInternalServerError, services.ErrAttachmentWrite.Error()
	case errors.Is(err, services.ErrStorageWrite):
		return http.StatusInternalServerError, services.ErrStorageWrite.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeServiceError(w http.ResponseWriter, err error) {
	status, msg := statusFor(err)
	writeJSON(w, status, ErrorResponse{Error: msg})
}
