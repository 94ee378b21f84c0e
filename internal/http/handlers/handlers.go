package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"

	domainattendance "github.com/preston-bernstein/team-ledger/internal/domain/attendance"
	domaindrills "github.com/preston-bernstein/team-ledger/internal/domain/drills"
	domaingames "github.com/preston-bernstein/team-ledger/internal/domain/games"
	domainplayers "github.com/preston-bernstein/team-ledger/internal/domain/players"
	domainsessions "github.com/preston-bernstein/team-ledger/internal/domain/sessions"
	"github.com/preston-bernstein/team-ledger/internal/maintenance"
)

// PlayerService is the roster contract consumed by the handlers.
type PlayerService interface {
	Players(ctx context.Context) ([]domainplayers.Player, error)
	PlayerByID(ctx context.Context, id string) (domainplayers.Player, bool, error)
	CreatePlayer(ctx context.Context, in domainplayers.Input) (domainplayers.Player, error)
	UpdatePlayer(ctx context.Context, id string, patch domainplayers.Patch) (domainplayers.Player, bool, error)
	DeletePlayer(ctx context.Context, id string) (bool, error)
}

// SessionService is the training calendar contract consumed by the handlers.
type SessionService interface {
	Sessions(ctx context.Context) ([]domainsessions.Session, error)
	SessionByID(ctx context.Context, id string) (domainsessions.Session, bool, error)
	CreateSession(ctx context.Context, in domainsessions.Input) ([]domainsessions.Session, error)
	UpdateSession(ctx context.Context, id string, patch domainsessions.Patch) (domainsessions.Session, bool, error)
	DeleteSession(ctx context.Context, id string) (bool, error)
	DeleteByRecurringID(ctx context.Context, recurringID string) (int, error)
}

// GameService is the schedule contract consumed by the handlers.
type GameService interface {
	Games(ctx context.Context) ([]domaingames.Game, error)
	GameByID(ctx context.Context, id string) (domaingames.Game, bool, error)
	CreateGame(ctx context.Context, in domaingames.Input) (domaingames.Game, error)
	UpdateGame(ctx context.Context, id string, patch domaingames.Patch) (domaingames.Game, bool, error)
	DeleteGame(ctx context.Context, id string) (bool, error)
}

// AttendanceService is the attendance contract consumed by the handlers.
type AttendanceService interface {
	ListAttendance(ctx context.Context, filter domainattendance.Filter) ([]domainattendance.Record, error)
	RecordAttendance(ctx context.Context, in domainattendance.Input) (domainattendance.Record, error)
	UpdateAttendance(ctx context.Context, id string, status string, notes *string) (domainattendance.Record, bool, error)
	DeleteAttendance(ctx context.Context, playerID, sessionID string) (bool, error)
}

// DrillService is the drill library contract consumed by the handlers.
type DrillService interface {
	Drills(ctx context.Context) ([]domaindrills.Drill, error)
	DrillTemplates(ctx context.Context) ([]domaindrills.Drill, error)
	DrillByID(ctx context.Context, id string) (domaindrills.Drill, bool, error)
	CreateDrill(ctx context.Context, in domaindrills.Input) (domaindrills.Drill, error)
	UpdateDrill(ctx context.Context, id string, patch domaindrills.Patch) (domaindrills.Drill, bool, error)
	DeleteDrill(ctx context.Context, id string) (bool, error)
}

// Services groups the app services behind the REST adapter.
type Services struct {
	Players    PlayerService
	Sessions   SessionService
	Games      GameService
	Attendance AttendanceService
	Drills     DrillService
}

// Handler wires HTTP routes to the app services.
type Handler struct {
	players    PlayerService
	sessions   SessionService
	games      GameService
	attendance AttendanceService
	drills     DrillService
	logger     *slog.Logger
	statusFn   func() maintenance.Status
}

// NewHandler constructs a Handler. statusFn may be nil when maintenance is disabled.
func NewHandler(svcs Services, logger *slog.Logger, statusFn func() maintenance.Status) *Handler {
	return &Handler{
		players:    svcs.Players,
		sessions:   svcs.Sessions,
		games:      svcs.Games,
		attendance: svcs.Attendance,
		drills:     svcs.Drills,
		logger:     logger,
		statusFn:   statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic, failing while maintenance is failing repeatedly.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

func pathID(w nethttp.ResponseWriter, r *nethttp.Request, name string, logger *slog.Logger) (string, bool) {
	id := r.PathValue(name)
	if id == "" {
		writeError(w, r, nethttp.StatusBadRequest, "invalid "+name, logger)
		return "", false
	}
	return id, true
}
