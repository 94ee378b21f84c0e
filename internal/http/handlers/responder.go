package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/team-ledger/internal/domain"
	"github.com/preston-bernstein/team-ledger/internal/http/middleware"
	"github.com/preston-bernstein/team-ledger/internal/logging"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeServiceError maps input errors to 400 and everything else to 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var inputErr *domain.InputError
	if errors.As(err, &inputErr) {
		writeError(w, r, http.StatusBadRequest, inputErr.Error(), logger)
		return
	}
	logging.Error(r.Context(), logger, "request failed", err)
	writeError(w, r, http.StatusInternalServerError, "internal error", logger)
}

// decodeJSON reads a JSON request body into dest. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewInputError("body", "is required")
		}
		return domain.NewInputError("body", "must be valid JSON")
	}
	return nil
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
