package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/team-ledger/internal/app"
	domainattendance "github.com/preston-bernstein/team-ledger/internal/domain/attendance"
	domaindrills "github.com/preston-bernstein/team-ledger/internal/domain/drills"
	domaingames "github.com/preston-bernstein/team-ledger/internal/domain/games"
	domainplayers "github.com/preston-bernstein/team-ledger/internal/domain/players"
	domainsessions "github.com/preston-bernstein/team-ledger/internal/domain/sessions"
	"github.com/preston-bernstein/team-ledger/internal/maintenance"
	"github.com/preston-bernstein/team-ledger/internal/testutil"
	"github.com/preston-bernstein/team-ledger/internal/titles"
)

func newTestHandler(t *testing.T) (*Handler, app.Services) {
	t.Helper()
	svcs := testutil.NewTempServices(t)
	h := NewHandler(Services{
		Players:    svcs.Players,
		Sessions:   svcs.Sessions,
		Games:      svcs.Games,
		Attendance: svcs.Attendance,
		Drills:     svcs.Drills,
	}, nil, nil)
	return h, svcs
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := testutil.ServeWithPath(h.Health, http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	req = req.WithContext(ctx)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req)

	testutil.AssertError(t, rr, http.StatusServiceUnavailable, "shutting down")
}

func TestReady(t *testing.T) {
	h, _ := newTestHandler(t)
	rr := testutil.ServeWithPath(h.Ready, http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	h.statusFn = func() maintenance.Status {
		return maintenance.Status{LastSuccess: time.Now(), ConsecutiveFailures: 3, LastError: "disk full"}
	}
	rr = testutil.ServeWithPath(h.Ready, http.MethodGet, "/ready", nil)
	testutil.AssertError(t, rr, http.StatusServiceUnavailable, "disk full")

	h.statusFn = func() maintenance.Status { return maintenance.Status{} }
	rr = testutil.ServeWithPath(h.Ready, http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

	h.statusFn = func() maintenance.Status { return maintenance.Status{LastSuccess: time.Now()} }
	rr = testutil.ServeWithPath(h.Ready, http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestPlayerLifecycle(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := testutil.ServeWithPath(h.CreatePlayer, http.MethodPost, "/players", testutil.JSONBody(t, testutil.SamplePlayerInput("Ada", "Lovelace")))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	var created domainplayers.Player
	testutil.DecodeJSON(t, rr, &created)
	if created.ID == "" || created.FirstName != "Ada" {
		t.Fatalf("unexpected player %+v", created)
	}

	rr = testutil.ServeWithPath(h.GetPlayer, http.MethodGet, "/players/"+created.ID, nil, "id", created.ID)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.ServeWithPath(h.UpdatePlayer, http.MethodPatch, "/players/"+created.ID, strings.NewReader(`{"lastName":"Byron"}`), "id", created.ID)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var updated domainplayers.Player
	testutil.DecodeJSON(t, rr, &updated)
	if updated.LastName != "Byron" || updated.FirstName != "Ada" {
		t.Fatalf("expected partial update, got %+v", updated)
	}

	rr = testutil.ServeWithPath(h.ListPlayers, http.MethodGet, "/players", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var list []domainplayers.Player
	testutil.DecodeJSON(t, rr, &list)
	if len(list) != 1 {
		t.Fatalf("expected one player, got %d", len(list))
	}

	rr = testutil.ServeWithPath(h.DeletePlayer, http.MethodDelete, "/players/"+created.ID, nil, "id", created.ID)
	testutil.AssertStatus(t, rr, http.StatusNoContent)
	rr = testutil.ServeWithPath(h.DeletePlayer, http.MethodDelete, "/players/"+created.ID, nil, "id", created.ID)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
	rr = testutil.ServeWithPath(h.GetPlayer, http.MethodGet, "/players/"+created.ID, nil, "id", created.ID)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestCreatePlayerRejectsBadInput(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := testutil.ServeWithPath(h.CreatePlayer, http.MethodPost, "/players", strings.NewReader(`{"firstName":""}`))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	rr = testutil.ServeWithPath(h.CreatePlayer, http.MethodPost, "/players", strings.NewReader(`{not json`))
	testutil.AssertError(t, rr, http.StatusBadRequest, "invalid body: must be valid JSON")

	rr = testutil.ServeWithPath(h.CreatePlayer, http.MethodPost, "/players", http.NoBody)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestCreatePlayerBackfillsPastSessions(t *testing.T) {
	h, svcs := newTestHandler(t)
	ctx := context.Background()
	past, err := svcs.Sessions.CreateSession(ctx, testutil.SampleSessionInput("2000-01-01", "18:00"))
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	rr := testutil.ServeWithPath(h.CreatePlayer, http.MethodPost, "/players", testutil.JSONBody(t, testutil.SamplePlayerInput("Ada", "Lovelace")))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	var p domainplayers.Player
	testutil.DecodeJSON(t, rr, &p)

	rr = testutil.ServeWithPath(h.ListAttendance, http.MethodGet, "/attendance?playerId="+p.ID, nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var recs []domainattendance.Record
	testutil.DecodeJSON(t, rr, &recs)
	if len(recs) != 1 || recs[0].SessionID != past[0].ID || recs[0].Status != domainattendance.StatusNotApplicable {
		t.Fatalf("expected NOT_APPLICABLE back-fill, got %+v", recs)
	}
}

func TestCreateSessionSeriesAndDeleteBySeries(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := testutil.ServeWithPath(h.CreateSession, http.MethodPost, "/sessions", testutil.JSONBody(t, testutil.SampleWeeklyInput("2024-01-01", "18:00", "2024-01-22")))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	var created []domainsessions.Session
	testutil.DecodeJSON(t, rr, &created)
	if len(created) != 4 {
		t.Fatalf("expected 4 weekly sessions, got %d", len(created))
	}
	rid := created[0].RecurringID
	for i, s := range created {
		if s.RecurringID != rid || rid == "" {
			t.Fatalf("expected shared recurring id, got %+v", s)
		}
		if want := titles.Format(i + 1); s.Title != want {
			t.Fatalf("expected title %q, got %q", want, s.Title)
		}
	}

	rr = testutil.ServeWithPath(h.DeleteSessionSeries, http.MethodDelete, "/sessions/recurring/"+rid, nil, "recurringId", rid)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var resp map[string]int
	testutil.DecodeJSON(t, rr, &resp)
	if resp["deleted"] != 4 {
		t.Fatalf("expected 4 deleted, got %v", resp)
	}

	rr = testutil.ServeWithPath(h.DeleteSessionSeries, http.MethodDelete, "/sessions/recurring/"+rid, nil, "recurringId", rid)
	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.DecodeJSON(t, rr, &resp)
	if resp["deleted"] != 0 {
		t.Fatalf("expected 0 deleted on repeat, got %v", resp)
	}
}

func TestSessionCrud(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := testutil.ServeWithPath(h.CreateSession, http.MethodPost, "/sessions", testutil.JSONBody(t, testutil.SampleSessionInput("2024-03-01", "19:00")))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	var created []domainsessions.Session
	testutil.DecodeJSON(t, rr, &created)
	if len(created) != 1 {
		t.Fatalf("expected one session, got %d", len(created))
	}
	id := created[0].ID

	rr = testutil.ServeWithPath(h.UpdateSession, http.MethodPatch, "/sessions/"+id, strings.NewReader(`{"location":"Annex"}`), "id", id)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.ServeWithPath(h.UpdateSession, http.MethodPatch, "/sessions/"+id, strings.NewReader(`{"date":"03/01/2024"}`), "id", id)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	rr = testutil.ServeWithPath(h.GetSession, http.MethodGet, "/sessions/"+id, nil, "id", id)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var got domainsessions.Session
	testutil.DecodeJSON(t, rr, &got)
	if got.Location != "Annex" {
		t.Fatalf("expected patched location, got %q", got.Location)
	}

	rr = testutil.ServeWithPath(h.ListSessions, http.MethodGet, "/sessions", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.ServeWithPath(h.DeleteSession, http.MethodDelete, "/sessions/"+id, nil, "id", id)
	testutil.AssertStatus(t, rr, http.StatusNoContent)
	rr = testutil.ServeWithPath(h.GetSession, http.MethodGet, "/sessions/"+id, nil, "id", id)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
	rr = testutil.ServeWithPath(h.UpdateSession, http.MethodPatch, "/sessions/"+id, strings.NewReader(`{}`), "id", id)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestMissingPathIDIsBadRequest(t *testing.T) {
	h, _ := newTestHandler(t)
	rr := testutil.ServeWithPath(h.GetSession, http.MethodGet, "/sessions/", nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestAttendanceEndpoints(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := testutil.ServeWithPath(h.RecordAttendance, http.MethodPost, "/attendance", testutil.JSONBody(t, testutil.SampleAttendanceInput("p1", "s1")))
	testutil.AssertStatus(t, rr, http.StatusOK)
	var rec domainattendance.Record
	testutil.DecodeJSON(t, rr, &rec)

	again := testutil.SampleAttendanceInput("p1", "s1")
	again.Status = domainattendance.StatusLate
	rr = testutil.ServeWithPath(h.RecordAttendance, http.MethodPost, "/attendance", testutil.JSONBody(t, again))
	testutil.AssertStatus(t, rr, http.StatusOK)
	var upserted domainattendance.Record
	testutil.DecodeJSON(t, rr, &upserted)
	if upserted.ID != rec.ID || upserted.Status != domainattendance.StatusLate {
		t.Fatalf("expected upsert to keep id and change status, got %+v", upserted)
	}

	rr = testutil.ServeWithPath(h.RecordAttendance, http.MethodPost, "/attendance", testutil.JSONBody(t, testutil.SampleAttendanceInput("p2", "s1")))
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.ServeWithPath(h.ListAttendance, http.MethodGet, "/attendance?sessionId=s1&playerId=p2", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var filtered []domainattendance.Record
	testutil.DecodeJSON(t, rr, &filtered)
	if len(filtered) != 1 || filtered[0].PlayerID != "p2" {
		t.Fatalf("expected filtered record for p2, got %+v", filtered)
	}

	rr = testutil.ServeWithPath(h.UpdateAttendance, http.MethodPatch, "/attendance/"+rec.ID, strings.NewReader(`{"status":"EXCUSED","notes":"sick"}`), "id", rec.ID)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var changed domainattendance.Record
	testutil.DecodeJSON(t, rr, &changed)
	if changed.Status != domainattendance.StatusExcused || changed.Notes != "sick" {
		t.Fatalf("unexpected record after update %+v", changed)
	}

	rr = testutil.ServeWithPath(h.UpdateAttendance, http.MethodPatch, "/attendance/"+rec.ID, strings.NewReader(`{"status":"MAYBE"}`), "id", rec.ID)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	rr = testutil.ServeWithPath(h.UpdateAttendance, http.MethodPatch, "/attendance/missing", strings.NewReader(`{"status":"PRESENT"}`), "id", "missing")
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	rr = testutil.ServeWithPath(h.DeleteAttendance, http.MethodDelete, "/attendance?playerId=p1", nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	rr = testutil.ServeWithPath(h.DeleteAttendance, http.MethodDelete, "/attendance?playerId=p1&sessionId=s1", nil)
	testutil.AssertStatus(t, rr, http.StatusNoContent)
	rr = testutil.ServeWithPath(h.DeleteAttendance, http.MethodDelete, "/attendance?playerId=p1&sessionId=s1", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestGameEndpoints(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := testutil.ServeWithPath(h.CreateGame, http.MethodPost, "/games", testutil.JSONBody(t, testutil.SampleGameInput("2024-02-10", "Rivals")))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	var g domaingames.Game
	testutil.DecodeJSON(t, rr, &g)

	rr = testutil.ServeWithPath(h.UpdateGame, http.MethodPatch, "/games/"+g.ID, strings.NewReader(`{"finalScore":"28-25"}`), "id", g.ID)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var updated domaingames.Game
	testutil.DecodeJSON(t, rr, &updated)
	if updated.FinalScore != "28-25" || !updated.HomeGame {
		t.Fatalf("unexpected game after update %+v", updated)
	}

	rr = testutil.ServeWithPath(h.GetGame, http.MethodGet, "/games/"+g.ID, nil, "id", g.ID)
	testutil.AssertStatus(t, rr, http.StatusOK)
	rr = testutil.ServeWithPath(h.ListGames, http.MethodGet, "/games", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	rr = testutil.ServeWithPath(h.DeleteGame, http.MethodDelete, "/games/"+g.ID, nil, "id", g.ID)
	testutil.AssertStatus(t, rr, http.StatusNoContent)
	rr = testutil.ServeWithPath(h.GetGame, http.MethodGet, "/games/"+g.ID, nil, "id", g.ID)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	rr = testutil.ServeWithPath(h.CreateGame, http.MethodPost, "/games", strings.NewReader(`{"date":"2024-02-10","startTime":"18:00"}`))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestDrillEndpoints(t *testing.T) {
	h, _ := newTestHandler(t)

	tmpl := testutil.SampleDrillInput("Rondo")
	tmpl.IsTemplate = true
	rr := testutil.ServeWithPath(h.CreateDrill, http.MethodPost, "/drills", testutil.JSONBody(t, tmpl))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	var d domaindrills.Drill
	testutil.DecodeJSON(t, rr, &d)

	rr = testutil.ServeWithPath(h.CreateDrill, http.MethodPost, "/drills", testutil.JSONBody(t, testutil.SampleDrillInput("Sprints")))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	rr = testutil.ServeWithPath(h.ListDrillTemplates, http.MethodGet, "/drills/templates", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var templates []domaindrills.Drill
	testutil.DecodeJSON(t, rr, &templates)
	if len(templates) != 1 || templates[0].ID != d.ID {
		t.Fatalf("expected only the template drill, got %+v", templates)
	}

	rr = testutil.ServeWithPath(h.ListDrills, http.MethodGet, "/drills", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var all []domaindrills.Drill
	testutil.DecodeJSON(t, rr, &all)
	if len(all) != 2 {
		t.Fatalf("expected two drills, got %d", len(all))
	}

	rr = testutil.ServeWithPath(h.UpdateDrill, http.MethodPatch, "/drills/"+d.ID, strings.NewReader(`{"feedback":"keep it tight"}`), "id", d.ID)
	testutil.AssertStatus(t, rr, http.StatusOK)
	rr = testutil.ServeWithPath(h.GetDrill, http.MethodGet, "/drills/"+d.ID, nil, "id", d.ID)
	testutil.AssertStatus(t, rr, http.StatusOK)
	rr = testutil.ServeWithPath(h.DeleteDrill, http.MethodDelete, "/drills/"+d.ID, nil, "id", d.ID)
	testutil.AssertStatus(t, rr, http.StatusNoContent)
	rr = testutil.ServeWithPath(h.DeleteDrill, http.MethodDelete, "/drills/"+d.ID, nil, "id", d.ID)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

type failingGames struct{}

func (failingGames) Games(context.Context) ([]domaingames.Game, error) {
	return nil, errors.New("disk unavailable")
}

func (failingGames) GameByID(context.Context, string) (domaingames.Game, bool, error) {
	return domaingames.Game{}, false, errors.New("disk unavailable")
}

func (failingGames) CreateGame(context.Context, domaingames.Input) (domaingames.Game, error) {
	return domaingames.Game{}, errors.New("disk unavailable")
}

func (failingGames) UpdateGame(context.Context, string, domaingames.Patch) (domaingames.Game, bool, error) {
	return domaingames.Game{}, false, errors.New("disk unavailable")
}

func (failingGames) DeleteGame(context.Context, string) (bool, error) {
	return false, errors.New("disk unavailable")
}

func TestServiceFailureReturnsInternalError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	h := NewHandler(Services{Games: failingGames{}}, logger, nil)

	rr := testutil.ServeWithPath(h.ListGames, http.MethodGet, "/games", nil)
	testutil.AssertError(t, rr, http.StatusInternalServerError, "internal error")
	if !strings.Contains(buf.String(), "disk unavailable") {
		t.Fatalf("expected cause logged, got %s", buf.String())
	}

	rr = testutil.ServeWithPath(h.DeleteGame, http.MethodDelete, "/games/g1", nil, "id", "g1")
	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
}

func TestRenumberSessions(t *testing.T) {
	_, svcs := newTestHandler(t)
	ctx := context.Background()
	for _, in := range []domainsessions.Input{
		testutil.SampleSessionInput("2024-01-10", "18:00"),
		testutil.SampleSessionInput("2024-01-03", "18:00"),
	} {
		if _, err := svcs.Sessions.CreateSession(ctx, in); err != nil {
			t.Fatalf("create session: %v", err)
		}
	}

	m := NewMaintenanceHandler(svcs.Sessions.RenumberTitles, nil)
	rr := testutil.ServeWithPath(m.RenumberSessions, http.MethodPost, "/sessions/renumber", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var resp map[string]int
	testutil.DecodeJSON(t, rr, &resp)
	// Both were stored as "Session 1"; only the later one moves.
	if resp["changed"] != 1 {
		t.Fatalf("expected one title changed, got %v", resp)
	}

	rr = testutil.ServeWithPath(m.RenumberSessions, http.MethodPost, "/sessions/renumber", nil)
	testutil.DecodeJSON(t, rr, &resp)
	if resp["changed"] != 0 {
		t.Fatalf("expected idempotent renumber, got %v", resp)
	}
}

func TestRenumberSessionsUnavailableAndFailing(t *testing.T) {
	m := NewMaintenanceHandler(nil, nil)
	rr := testutil.ServeWithPath(m.RenumberSessions, http.MethodPost, "/sessions/renumber", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

	m = NewMaintenanceHandler(func(context.Context) (int, error) { return 0, errors.New("write failed") }, nil)
	rr = testutil.ServeWithPath(m.RenumberSessions, http.MethodPost, "/sessions/renumber", nil)
	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
}
