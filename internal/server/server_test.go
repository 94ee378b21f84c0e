package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/team-ledger/internal/config"
	domainsessions "github.com/preston-bernstein/team-ledger/internal/domain/sessions"
	"github.com/preston-bernstein/team-ledger/internal/maintenance"
	"github.com/preston-bernstein/team-ledger/internal/metrics"
	"github.com/preston-bernstein/team-ledger/internal/testutil"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Port:        "0",
		DataDir:     t.TempDir(),
		Maintenance: config.MaintenanceConfig{Enabled: true, Schedule: "@daily"},
		Metrics:     config.MetricsConfig{Enabled: false},
	}
}

func TestServerServesHealthAndSessions(t *testing.T) {
	cfg := testConfig(t)
	srv, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected middleware to set X-Request-ID")
	}

	body := `{"date":"2024-01-01","startTime":"18:00","recurringPattern":"weekly","recurringEndDate":"2024-01-15"}`
	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(body))
	rr = testutil.ServeRequest(srv.Handler(), req)
	testutil.AssertStatus(t, rr, http.StatusCreated)
	var created []domainsessions.Session
	testutil.DecodeJSON(t, rr, &created)
	if len(created) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(created))
	}

	if _, err := os.Stat(filepath.Join(cfg.DataDir, "training-sessions.json")); err != nil {
		t.Fatalf("expected sessions persisted under data dir: %v", err)
	}

	rr = testutil.Serve(srv.Handler(), http.MethodPost, "/sessions/renumber", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestReadyFollowsMaintenanceStatus(t *testing.T) {
	srv, err := New(testConfig(t), nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	// No pass has run yet.
	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

	if _, err := srv.runner.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	rr = testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestNewWithoutMaintenanceIsReady(t *testing.T) {
	cfg := testConfig(t)
	cfg.Maintenance.Enabled = false
	srv, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.runner != nil {
		t.Fatalf("expected no runner when maintenance disabled")
	}
	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.Serve(srv.Handler(), http.MethodPost, "/sessions/renumber", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestNewRejectsInvalidSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.Maintenance.Schedule = "every tuesday"
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("expected error for invalid cron schedule")
	}
}

func TestNewFailsWhenDataDirIsAFile(t *testing.T) {
	cfg := testConfig(t)
	file := filepath.Join(cfg.DataDir, "occupied")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	cfg.DataDir = file
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("expected init error when data dir is a file")
	}
}

func TestNewServerWithMetricsHandlesSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	cfg := testConfig(t)
	cfg.Metrics.Enabled = true
	srv, err := newServerWithMetrics(cfg, nil, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.metrics == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server on setup failure")
	}
}

func TestNewServerWithMetricsUsesInjectedRecorder(t *testing.T) {
	rec, _ := testutil.NewRecorderWithShutdown()
	srv, err := newServerWithMetrics(testConfig(t), nil, rec)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.metrics != rec {
		t.Fatalf("expected injected recorder to be used")
	}

	req := httptest.NewRequest(http.MethodPost, "/players", strings.NewReader(`{"firstName":"Ada","lastName":"Lovelace"}`))
	rr := testutil.ServeRequest(srv.Handler(), req)
	testutil.AssertStatus(t, rr, http.StatusCreated)
	if got := rec.Snapshot("players").Saves; got != 1 {
		t.Fatalf("expected one players save recorded, got %d", got)
	}
}

func TestGracefulShutdownCallsStopAndShutdown(t *testing.T) {
	r := &testutil.StubRunner{}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, r)
	srv.gracefulShutdown()

	if r.StopCalls != 1 {
		t.Fatalf("expected runner Stop to be called once, got %d", r.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	r := &testutil.StubRunner{}
	blocking := &testutil.BlockingHTTPServer{
		AddrVal:    ":0",
		HandlerVal: http.NewServeMux(),
		Unblock:    make(chan struct{}),
	}

	cfg := config.Config{HTTP: config.HTTPConfig{ShutdownTimeout: 5 * time.Millisecond}}
	srv := newServerWithDeps(cfg, nil, blocking, r)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.ShutdownCalls)
	}
	if r.StopCalls != 1 {
		t.Fatalf("expected runner Stop to be called once, got %d", r.StopCalls)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestGracefulShutdownContinuesWhenRunnerStopErrors(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	r := &testutil.StubRunner{Err: errors.New("stop failure")}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, logger, httpSrv, r)
	srv.gracefulShutdown()

	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
	if !strings.Contains(buf.String(), "stop failure") {
		t.Fatalf("expected stop failure logged, got %s", buf.String())
	}
}

func TestGracefulShutdownWithoutRunner(t *testing.T) {
	httpSrv := &testutil.StubHTTPServer{}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv, nil)
	srv.gracefulShutdown()
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, &testutil.ErrHTTPServer{}, &testutil.StubRunner{})

	var wg sync.WaitGroup
	wg.Add(1)
	stopCalled := make(chan struct{})
	stop := func() {
		close(stopCalled)
		wg.Done()
	}

	srv.startServer(stop)

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}

	wg.Wait()
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &testutil.StubRunner{StatusVal: maintenance.Status{LastSuccess: time.Now()}}
	httpSrv := &testutil.CloseableHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, r)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	// Let Start be invoked.
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	if r.StartCalls != 1 {
		t.Fatalf("expected runner Start called once, got %d", r.StartCalls)
	}
	if r.StopCalls != 1 {
		t.Fatalf("expected runner Stop called once, got %d", r.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown called once, got %d", httpSrv.ShutdownCalls)
	}
}
