package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/syntra-ai/syntra/internal/inbox"
	"github.com/syntra-ai/syntra/internal/reports"
	"github.com/syntra-ai/syntra/internal/session"
	"github.com/syntra-ai/syntra/internal/settings"
	"github.com/syntra-ai/syntra/internal/tasks"
	"github.com/syntra-ai/syntra/internal/tools"
)

const maxRequestBodySize = 1 << 20 // 1MB

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}

// writeError maps domain errors to a status code and error type.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, inbox.ErrEmptyMessage),
		errors.Is(err, tasks.ErrMissingRequired),
		errors.Is(err, tasks.ErrInvalidPriority),
		errors.Is(err, tools.ErrUnknownKind),
		errors.Is(err, tools.ErrMissingCredential),
		errors.Is(err, session.ErrMissingFields),
		errors.Is(err, session.ErrPasswordMismatch),
		errors.Is(err, session.ErrPasswordTooShort),
		errors.Is(err, reports.ErrUnknownPeriod),
		errors.Is(err, settings.ErrInvalidTheme):
		httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
	case errors.Is(err, session.ErrNotAuthenticated):
		httpError(w, http.StatusNotFound, "session_error", "%v", err)
	case errors.Is(err, tasks.ErrUnknownDeletion):
		httpError(w, http.StatusNotFound, "not_found", "%v", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		httpError(w, http.StatusServiceUnavailable, "api_error", "request cancelled: %v", err)
	default:
		httpError(w, http.StatusInternalServerError, "api_error", "%v", err)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// decodeBody decodes a size-limited JSON request body into v. It writes the
// error response itself and reports false on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return false
	}
	return true
}
