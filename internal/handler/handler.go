package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"churro-kiosk/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeDomainError maps a business failure to its HTTP status. Non-domain
// errors fall through to a 500.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		writeError(w, http.StatusInternalServerError, "internal error", logger)
		return
	}

	logger.Warn().Str("code", domainErr.Code).Str("error", domainErr.Message).Msg("request refused")
	writeJSON(w, statusForCode(domainErr.Code), ErrorResponse{
		Error: domainErr.Message,
		Code:  domainErr.Code,
	})
}

func statusForCode(code string) int {
	switch code {
	case model.ErrCodeInvalidJSON,
		model.ErrCodeInvalidQuantity,
		model.ErrCodeProductNotFound,
		model.ErrCodeEmptyCart,
		model.ErrCodeNoPaymentMethod,
		model.ErrCodeNoSession:
		return http.StatusBadRequest
	case model.ErrCodeItemNotFound:
		return http.StatusNotFound
	case model.ErrCodeWrongState, model.ErrCodeSubmitInFlight:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
