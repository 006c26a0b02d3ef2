package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"fabhomes/internal/models"
)

const (
	ErrCodeInvalidPayload = "invalid_payload"
	ErrCodeValidation     = "validation_error"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeForbidden      = "forbidden"
	ErrCodeNotFound       = "not_found"
	ErrCodeConflict       = "conflict"
	ErrCodeUnavailable    = "service_unavailable"
	ErrCodeInternal       = "internal_server_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, code, message string, details any) {
	body := ErrorResponse{Code: code, Message: message}
	if details != nil {
		body.Details = details
	}
	writeJSON(w, status, body)
}

// ServerError answers 500 and logs the cause. The client never sees err.
func ServerError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error) {
	log.WithFields(logrus.Fields{
		"status": http.StatusInternalServerError,
		"method": r.Method,
		"path":   r.URL.Path,
	}).WithError(err).Error("request failed")
	respondError(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil)
}

// Unauthorized answers 401 for operations that need a caller.
func Unauthorized(w http.ResponseWriter) {
	respondError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Authentication credentials were not provided.", nil)
}

// respondServiceError maps service and model errors onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "Validation error", verr.Fields)
	case errors.Is(err, models.ErrInvalidPage):
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Invalid page.", nil)
	case errors.Is(err, models.ErrNotFound):
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Not found.", nil)
	case errors.Is(err, models.ErrUnauthenticated):
		Unauthorized(w)
	case errors.Is(err, models.ErrForbidden):
		respondError(w, http.StatusForbidden, ErrCodeForbidden, "You do not have permission to perform this action.", nil)
	case errors.Is(err, models.ErrConflict):
		respondError(w, http.StatusConflict, ErrCodeConflict, "The record already exists.", nil)
	case errors.Is(err, models.ErrInvalidReviewTarget):
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
	case errors.Is(err, models.ErrInvalidStatus):
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "Invalid status.", nil)
	case errors.Is(err, models.ErrInvalidReference):
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "A referenced record does not exist.", nil)
	case errors.Is(err, models.ErrStorageDisabled):
		respondError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "Image storage is not configured.", nil)
	default:
		ServerError(w, r, log, err)
	}
}
