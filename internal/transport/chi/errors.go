package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kailas-cloud/discovery/internal/domain"
)

// ErrorCode is the machine-readable code in an error response.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest          ErrorCode = "bad_request"
	CodeUnauthorized        ErrorCode = "unauthorized"
	CodeNotFound            ErrorCode = "not_found"
	CodeInvalidPage         ErrorCode = "invalid_page"
	CodeInvalidCollection   ErrorCode = "invalid_collection"
	CodeUpstreamUnavailable ErrorCode = "upstream_unavailable"
	CodeHierarchyTooDeep    ErrorCode = "hierarchy_too_deep"
	CodeInternalError       ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

var errorHandlers = []errorHandler{
	sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
	sentinelHandler(domain.ErrInvalidPage, http.StatusBadRequest, CodeInvalidPage),
	sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, CodeBadRequest),
	sentinelHandler(domain.ErrInvalidCollection, http.StatusUnprocessableEntity, CodeInvalidCollection),
	sentinelHandler(domain.ErrUpstreamUnavailable, http.StatusBadGateway, CodeUpstreamUnavailable),
	sentinelHandler(domain.ErrHierarchyTooDeep, http.StatusInternalServerError, CodeHierarchyTooDeep),
}

var sentinels = []error{
	domain.ErrNotFound,
	domain.ErrInvalidPage,
	domain.ErrInvalidRequest,
	domain.ErrInvalidCollection,
	domain.ErrUpstreamUnavailable,
	domain.ErrHierarchyTooDeep,
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
