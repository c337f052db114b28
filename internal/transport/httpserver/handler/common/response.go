package common

import (
	"encoding/json"
	"errors"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/saurabhsolanke/expensify-be/internal/domain/apperr"
	borroweddomain "github.com/saurabhsolanke/expensify-be/internal/domain/borrowed"
	"github.com/saurabhsolanke/expensify-be/internal/domain/paging"
	"github.com/saurabhsolanke/expensify-be/pkg/logger"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code            string      `json:"code"`
	Message         string      `json:"message"`
	Field           string      `json:"field,omitempty"`
	Value           interface{} `json:"value,omitempty"`
	RemainingAmount *float64    `json:"remaining_amount,omitempty"`
}

func writeError(w http.ResponseWriter, status int, body errorBody) {
	writeJSON(w, status, errorEnvelope{Error: body})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	writeError(w, status, errorBody{Code: code, Message: message})
}

func WriteFieldError(w http.ResponseWriter, field string, value interface{}, message string) {
	writeError(w, http.StatusBadRequest, errorBody{Code: "invalid_request", Message: message, Field: field, Value: value})
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	writeJSON(w, status, payload)
}

func DecodeJSON(r *http.Request, dst interface{}) error {
	return decodeJSON(r, dst)
}

func WriteInvalidJSON(w http.ResponseWriter) {
	WriteError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
}

func WriteUnauthorized(w http.ResponseWriter) {
	WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

// StatusFor maps a domain error kind to the HTTP status it is reported with.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindInvalidFormat, apperr.KindReference, apperr.KindConflict:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteDomainError logs err under op and writes the matching error envelope.
// Errors that do not carry a domain kind are reported as a generic 500.
func WriteDomainError(w http.ResponseWriter, r *http.Request, log logger.Logger, op string, err error, args ...any) {
	if requestID := chimw.GetReqID(r.Context()); requestID != "" {
		args = append(args, "request_id", requestID)
	}

	var exceeds *borroweddomain.ExceedsRemainingError
	if errors.As(err, &exceeds) {
		log.BusinessError(op, err, args...)
		remaining := exceeds.Remaining
		writeError(w, http.StatusBadRequest, errorBody{
			Code:            borroweddomain.ErrExceedsRemaining.Code,
			Message:         borroweddomain.ErrExceedsRemaining.Message,
			Field:           "amount",
			Value:           exceeds.Requested,
			RemainingAmount: &remaining,
		})
		return
	}

	appErr, ok := apperr.As(err)
	if !ok || appErr.Kind == apperr.KindInternal {
		log.InternalError(op, err, args...)
		WriteError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	log.BusinessError(op, err, args...)
	writeError(w, StatusFor(appErr.Kind), errorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
		Field:   appErr.Field,
		Value:   appErr.Value,
	})
}

// ListResponse wraps one page of a list endpoint. Items is keyed by the
// entity name, e.g. "expenses".
func ListResponse(key string, items interface{}, total int64, params paging.Params) map[string]interface{} {
	return map[string]interface{}{
		key:           items,
		"total":       total,
		"totalPages":  paging.TotalPages(total, params.Limit),
		"currentPage": params.Page,
	}
}

// MutationResponse is the envelope returned by create, update and action
// endpoints.
func MutationResponse(message, key string, entity interface{}) map[string]interface{} {
	return map[string]interface{}{
		"message": message,
		key:       entity,
	}
}

func MessageResponse(message string) map[string]string {
	return map[string]string{"message": message}
}
