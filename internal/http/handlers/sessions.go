package handlers

import (
	nethttp "net/http"

	domainsessions "github.com/preston-bernstein/team-ledger/internal/domain/sessions"
	"github.com/preston-bernstein/team-ledger/internal/logging"
)

// ListSessions returns the training calendar.
func (h *Handler) ListSessions(w nethttp.ResponseWriter, r *nethttp.Request) {
	list, err := h.sessions.Sessions(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, list, h.logger)
}

// GetSession returns one training session.
func (h *Handler) GetSession(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}
	s, found, err := h.sessions.SessionByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "session not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, s, h.logger)
}

// CreateSession creates one session or a recurring series and returns every created session.
func (h *Handler) CreateSession(w nethttp.ResponseWriter, r *nethttp.Request) {
	var in domainsessions.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	created, err := h.sessions.CreateSession(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusCreated, created, h.logger)
}

// UpdateSession patches one training session.
func (h *Handler) UpdateSession(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}
	var patch domainsessions.Patch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	s, found, err := h.sessions.UpdateSession(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "session not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, s, h.logger)
}

// DeleteSession removes one training session.
func (h *Handler) DeleteSession(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}
	removed, err := h.sessions.DeleteSession(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if !removed {
		writeError(w, r, nethttp.StatusNotFound, "session not found", h.logger)
		return
	}
	w.WriteHeader(nethttp.StatusNoContent)
}

// DeleteSessionSeries removes every session sharing a recurring id and reports the count.
func (h *Handler) DeleteSessionSeries(w nethttp.ResponseWriter, r *nethttp.Request) {
	rid, ok := pathID(w, r, "recurringId", h.logger)
	if !ok {
		return
	}
	n, err := h.sessions.DeleteByRecurringID(r.Context(), rid)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	logging.Info(r.Context(), h.logger, "series delete served", logging.FieldRecurringID, rid, logging.FieldCount, n)
	writeJSON(w, nethttp.StatusOK, map[string]int{"deleted": n}, h.logger)
}
