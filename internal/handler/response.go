package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nabil/snipdrop/internal/apperror"
)

// ErrorResponse is the standard error shape returned by every endpoint:
//
//	{"error": "conflict", "detail": "email already registered"}
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// writeJSON sends a JSON response. Headers and status must be committed
// before the body; once Encode writes, header changes are ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to an HTTP status and sends it.
//
// Mapping:
//
//	ErrValidation          → 400 (bad or rejected input, including a bad artist_id)
//	ErrConflict            → 400 (duplicate email/username at registration)
//	ErrInvalidCredentials  → 400 (login failure, opaque)
//	ErrNotFound            → 404 (missing user/snippet reference)
//	anything else          → 500, generic message
//
// Conflicts return 400 rather than 409 because that is the documented API
// contract for registration. The raw error never reaches the client on the
// 500 path — it might carry SQL fragments or filesystem paths.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusBadRequest
			errorType = "conflict"
		case errors.Is(err, apperror.ErrInvalidCredentials):
			status = http.StatusBadRequest
			errorType = "invalid_credentials"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		}

		writeJSON(w, status, ErrorResponse{
			Error:  errorType,
			Detail: appErr.Message,
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:  "internal_error",
		Detail: "an internal error occurred",
	})
}
