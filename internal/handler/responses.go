package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"recipebox/internal/domain"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse lists the offending fields of a rejected request.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		status = http.StatusInternalServerError
		buf.Reset()
		json.NewEncoder(&buf).Encode(ErrorResponse{Error: ErrMsgGenericServerError})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("Failed to write JSON response", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and answers with the status it maps to.
func respondServiceError(w http.ResponseWriter, r *http.Request, action string, err error) {
	status, msg := mapServiceError(err)
	log := slogFor(r)
	if status >= http.StatusInternalServerError {
		log.Error(action+" failed", "error", err)
	} else {
		log.Debug(action+" rejected", "status", status, "error", err)
	}
	respondError(w, status, msg)
}

// mapServiceError maps domain errors to an HTTP status and a message that is
// safe to show. Unknown errors never leak their text.
func mapServiceError(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrRecipeNotFound):
		return http.StatusNotFound, ErrMsgRecipeNotFound
	case errors.Is(err, domain.ErrShoppingListNotFound):
		return http.StatusNotFound, ErrMsgShoppingListNotFound
	case errors.Is(err, domain.ErrShopNotFound):
		return http.StatusNotFound, ErrMsgShopNotFound
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, ErrMsgOrderNotFound
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrMsgResourceNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrMsgForbidden
	case errors.Is(err, domain.ErrMenuItemUnavailable):
		return http.StatusConflict, ErrMsgMenuItemUnavailable
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		return http.StatusConflict, ErrMsgInvalidStatusTransition
	case errors.Is(err, domain.ErrSuggestionsDisabled):
		return http.StatusServiceUnavailable, ErrMsgFeatureUnavailable
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// nonNil keeps empty collections encoding as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
