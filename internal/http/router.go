package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/team-ledger/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. maint may be nil.
func NewRouter(h *handlers.Handler, maint *handlers.MaintenanceHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)

	mux.HandleFunc("GET /players", h.ListPlayers)
	mux.HandleFunc("POST /players", h.CreatePlayer)
	mux.HandleFunc("GET /players/{id}", h.GetPlayer)
	mux.HandleFunc("PATCH /players/{id}", h.UpdatePlayer)
	mux.HandleFunc("DELETE /players/{id}", h.DeletePlayer)

	mux.HandleFunc("GET /sessions", h.ListSessions)
	mux.HandleFunc("POST /sessions", h.CreateSession)
	mux.HandleFunc("GET /sessions/{id}", h.GetSession)
	mux.HandleFunc("PATCH /sessions/{id}", h.UpdateSession)
	mux.HandleFunc("DELETE /sessions/{id}", h.DeleteSession)
	mux.HandleFunc("DELETE /sessions/recurring/{recurringId}", h.DeleteSessionSeries)
	if maint != nil {
		mux.HandleFunc("POST /sessions/renumber", maint.RenumberSessions)
	}

	mux.HandleFunc("GET /games", h.ListGames)
	mux.HandleFunc("POST /games", h.CreateGame)
	mux.HandleFunc("GET /games/{id}", h.GetGame)
	mux.HandleFunc("PATCH /games/{id}", h.UpdateGame)
	mux.HandleFunc("DELETE /games/{id}", h.DeleteGame)

	mux.HandleFunc("GET /attendance", h.ListAttendance)
	mux.HandleFunc("POST /attendance", h.RecordAttendance)
	mux.HandleFunc("PATCH /attendance/{id}", h.UpdateAttendance)
	mux.HandleFunc("DELETE /attendance", h.DeleteAttendance)

	mux.HandleFunc("GET /drills", h.ListDrills)
	mux.HandleFunc("POST /drills", h.CreateDrill)
	mux.HandleFunc("GET /drills/templates", h.ListDrillTemplates)
	mux.HandleFunc("GET /drills/{id}", h.GetDrill)
	mux.HandleFunc("PATCH /drills/{id}", h.UpdateDrill)
	mux.HandleFunc("DELETE /drills/{id}", h.DeleteDrill)
	return mux
}
