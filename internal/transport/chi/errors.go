package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ridedine/ridedine/internal/domain"
)

// ErrorCode is the machine-readable code of an error response.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest        ErrorCode = "bad_request"
	CodeValidationFailed  ErrorCode = "validation_failed"
	CodeUnauthorized      ErrorCode = "unauthorized"
	CodeNotFound          ErrorCode = "not_found"
	CodeMalformedRecord   ErrorCode = "malformed_record"
	CodeRateLimited       ErrorCode = "rate_limited"
	CodeCatalogNotLoaded  ErrorCode = "catalog_not_loaded"
	CodeSourceUnavailable ErrorCode = "source_unavailable"
	CodeInternalError     ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

var errorHandlers = []errorHandler{
	malformedRecordHandler,
	sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, CodeValidationFailed),
	sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
	sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, CodeRateLimited),
	sentinelHandler(domain.ErrCatalogNotLoaded, http.StatusServiceUnavailable, CodeCatalogNotLoaded),
	sentinelHandler(domain.ErrSourceUnavailable, http.StatusServiceUnavailable, CodeSourceUnavailable),
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrMalformedRecord,
		domain.ErrInvalidQuery,
		domain.ErrNotFound,
		domain.ErrRateLimited,
		domain.ErrCatalogNotLoaded,
		domain.ErrSourceUnavailable,
	}
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

// malformedRecordHandler reports which record and field broke a catalog build.
func malformedRecordHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrMalformedRecord) {
		return false
	}
	var mf *domain.MalformedFieldError
	if errors.As(err, &mf) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"code":    CodeMalformedRecord,
			"message": msg,
			"record":  mf.Record,
			"field":   mf.Field,
		})
		return true
	}
	writeError(w, http.StatusUnprocessableEntity, CodeMalformedRecord, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
