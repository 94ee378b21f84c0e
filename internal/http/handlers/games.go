package handlers

import (
	nethttp "net/http"

	domaingames "github.com/preston-bernstein/team-ledger/internal/domain/games"
)

// ListGames returns the schedule.
func (h *Handler) ListGames(w nethttp.ResponseWriter, r *nethttp.Request) {
	list, err := h.games.Games(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, list, h.logger)
}

// GetGame returns a specific game if present.
func (h *Handler) GetGame(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}
	g, found, err := h.games.GameByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "game not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, g, h.logger)
}

// CreateGame schedules a game.
func (h *Handler) CreateGame(w nethttp.ResponseWriter, r *nethttp.Request) {
	var in domaingames.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	g, err := h.games.CreateGame(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusCreated, g, h.logger)
}

// UpdateGame patches one game.
func (h *Handler) UpdateGame(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}
	var patch domaingames.Patch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	g, found, err := h.games.UpdateGame(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "game not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, g, h.logger)
}

// DeleteGame removes one game.
func (h *Handler) DeleteGame(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}
	removed, err := h.games.DeleteGame(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if !removed {
		writeError(w, r, nethttp.StatusNotFound, "game not found", h.logger)
		return
	}
	w.WriteHeader(nethttp.StatusNoContent)
}
