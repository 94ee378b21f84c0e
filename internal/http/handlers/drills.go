package handlers

import (
	nethttp "net/http"

	domaindrills "github.com/preston-bernstein/team-ledger/internal/domain/drills"
)

// ListDrills returns the drill library.
func (h *Handler) ListDrills(w nethttp.ResponseWriter, r *nethttp.Request) {
	list, err := h.drills.Drills(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, list, h.logger)
}

// ListDrillTemplates returns drills flagged as templates.
func (h *Handler) ListDrillTemplates(w nethttp.ResponseWriter, r *nethttp.Request) {
	list, err := h.drills.DrillTemplates(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, list, h.logger)
}

// GetDrill returns one drill.
func (h *Handler) GetDrill(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}
	d, found, err := h.drills.DrillByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "drill not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, d, h.logger)
}

// CreateDrill adds a drill.
func (h *Handler) CreateDrill(w nethttp.ResponseWriter, r *nethttp.Request) {
	var in domaindrills.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	d, err := h.drills.CreateDrill(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusCreated, d, h.logger)
}

// UpdateDrill patches one drill.
func (h *Handler) UpdateDrill(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}
	var patch domaindrills.Patch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	d, found, err := h.drills.UpdateDrill(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "drill not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, d, h.logger)
}

// DeleteDrill removes one drill.
func (h *Handler) DeleteDrill(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}
	removed, err := h.drills.DeleteDrill(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if !removed {
		writeError(w, r, nethttp.StatusNotFound, "drill not found", h.logger)
		return
	}
	w.WriteHeader(nethttp.StatusNoContent)
}
