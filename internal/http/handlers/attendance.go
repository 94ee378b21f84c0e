package handlers

import (
	nethttp "net/http"

	domainattendance "github.com/preston-bernstein/team-ledger/internal/domain/attendance"
)

type attendanceUpdate struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

// ListAttendance returns records, optionally filtered by sessionId and playerId.
func (h *Handler) ListAttendance(w nethttp.ResponseWriter, r *nethttp.Request) {
	q := r.URL.Query()
	filter := domainattendance.Filter{
		SessionID: q.Get("sessionId"),
		PlayerID:  q.Get("playerId"),
	}
	list, err := h.attendance.ListAttendance(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, list, h.logger)
}

// RecordAttendance upserts the record for (playerId, sessionId).
func (h *Handler) RecordAttendance(w nethttp.ResponseWriter, r *nethttp.Request) {
	var in domainattendance.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	rec, err := h.attendance.RecordAttendance(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, rec, h.logger)
}

// UpdateAttendance changes status and notes of a record by id.
func (h *Handler) UpdateAttendance(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}
	var body attendanceUpdate
	if err := decodeJSON(w, r, &body); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	rec, found, err := h.attendance.UpdateAttendance(r.Context(), id, body.Status, body.Notes)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "attendance record not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, rec, h.logger)
}

// DeleteAttendance removes the record for the playerId and sessionId query parameters.
func (h *Handler) DeleteAttendance(w nethttp.ResponseWriter, r *nethttp.Request) {
	q := r.URL.Query()
	removed, err := h.attendance.DeleteAttendance(r.Context(), q.Get("playerId"), q.Get("sessionId"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if !removed {
		writeError(w, r, nethttp.StatusNotFound, "attendance record not found", h.logger)
		return
	}
	w.WriteHeader(nethttp.StatusNoContent)
}
