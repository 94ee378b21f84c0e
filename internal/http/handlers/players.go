package handlers

import (
	nethttp "net/http"

	domainplayers "github.com/preston-bernstein/team-ledger/internal/domain/players"
)

// ListPlayers returns the roster.
func (h *Handler) ListPlayers(w nethttp.ResponseWriter, r *nethttp.Request) {
	list, err := h.players.Players(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, list, h.logger)
}

// GetPlayer returns one player.
func (h *Handler) GetPlayer(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}
	p, found, err := h.players.PlayerByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "player not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, p, h.logger)
}

// CreatePlayer adds a player and back-fills their past attendance.
func (h *Handler) CreatePlayer(w nethttp.ResponseWriter, r *nethttp.Request) {
	var in domainplayers.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	p, err := h.players.CreatePlayer(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusCreated, p, h.logger)
}

// UpdatePlayer patches one player.
func (h *Handler) UpdatePlayer(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}
	var patch domainplayers.Patch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	p, found, err := h.players.UpdatePlayer(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "player not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, p, h.logger)
}

// DeletePlayer removes one player.
func (h *Handler) DeletePlayer(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}
	removed, err := h.players.DeletePlayer(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if !removed {
		writeError(w, r, nethttp.StatusNotFound, "player not found", h.logger)
		return
	}
	w.WriteHeader(nethttp.StatusNoContent)
}
