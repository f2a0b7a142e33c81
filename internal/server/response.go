package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/designemotion/transcript/internal/apperr"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type infoResponse struct {
	Info string `json:"info"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func statusOf(tag apperr.Tag) int {
	switch tag {
	case apperr.TagInsufficientCredit:
		return http.StatusPaymentRequired
	case apperr.TagInvalidAuthorization:
		return http.StatusForbidden
	case apperr.TagRateLimited:
		return http.StatusTooManyRequests
	case apperr.TagInvalidValidationTicket, apperr.TagTicketNotFound, apperr.TagInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err in language. Infrastructure details go to the log only.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, language string) {
	tag := apperr.TagOf(err)
	status := statusOf(tag)
	if status == http.StatusInternalServerError {
		attrs := []any{
			"tag", tag,
			"path", r.URL.Path,
			"error", err,
		}
		var ie *apperr.InfraError
		if errors.As(err, &ie) {
			attrs = append(attrs, "op", ie.Op)
		}
		slog.Default().Error("request failed", attrs...)
	}
	writeJSON(w, status, errorResponse{
		Error:   string(tag),
		Message: h.Localizer.Message(err, language),
	})
}
