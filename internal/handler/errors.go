package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hmdang/tripplanner/backend/internal/domain"
)

// ErrorResponse is the uniform error body for every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a human-readable
// message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps a typed service error onto its HTTP status and writes the
// uniform error body. Unclassified errors (including domain.ErrStore) become
// a 500 with a generic message; the underlying cause is logged, not leaked.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{ErrorDetail{"not_found", "not found"}})
	case errors.Is(err, domain.ErrInvalidIndex):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{ErrorDetail{"invalid_index", "index out of bounds"}})
	case errors.Is(err, domain.ErrInvalidShareToken):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{ErrorDetail{"invalid_share_token", "malformed share link"}})
	case errors.Is(err, domain.ErrPermissionDenied):
		writeJSON(w, http.StatusForbidden, ErrorResponse{ErrorDetail{"permission_denied", "not allowed to modify this plan"}})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{ErrorDetail{"validation_error", unwrapMessage(err)}})
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{ErrorDetail{"internal_error", "internal error"}})
	}
}

// requestError writes a 422 for a bad request rejected before reaching the
// service layer (e.g. missing or malformed body, non-numeric index).
func requestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{ErrorDetail{"validation_error", message}})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "service.PlanService.SavePlan: validation error: destination
// is required" becomes "destination is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
