package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/team-ledger/internal/http/requestutil"
	"github.com/preston-bernstein/team-ledger/internal/logging"
)

// RenumberFunc runs one title renumbering pass and reports how many titles changed.
type RenumberFunc func(ctx context.Context) (int, error)

// MaintenanceHandler exposes on-demand calendar maintenance.
type MaintenanceHandler struct {
	renumber RenumberFunc
	logger   *slog.Logger
}

// NewMaintenanceHandler constructs a MaintenanceHandler.
func NewMaintenanceHandler(renumber RenumberFunc, logger *slog.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{renumber: renumber, logger: logger}
}

// RenumberSessions retitles every session by chronological position.
func (h *MaintenanceHandler) RenumberSessions(w http.ResponseWriter, r *http.Request) {
	if h.renumber == nil {
		writeError(w, r, http.StatusServiceUnavailable, "maintenance not configured", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)
	changed, err := h.renumber(r.Context())
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	logging.Info(r.Context(), logger, "renumber requested",
		logging.FieldCount, changed,
		"client_ip", requestutil.ClientIP(r),
	)
	writeJSON(w, http.StatusOK, map[string]int{"changed": changed}, logger)
}
