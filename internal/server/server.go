package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/team-ledger/internal/app"
	"github.com/preston-bernstein/team-ledger/internal/config"
	"github.com/preston-bernstein/team-ledger/internal/docstore"
	httpserver "github.com/preston-bernstein/team-ledger/internal/http"
	"github.com/preston-bernstein/team-ledger/internal/http/handlers"
	"github.com/preston-bernstein/team-ledger/internal/http/middleware"
	"github.com/preston-bernstein/team-ledger/internal/logging"
	"github.com/preston-bernstein/team-ledger/internal/maintenance"
	"github.com/preston-bernstein/team-ledger/internal/metrics"
	"github.com/preston-bernstein/team-ledger/internal/store"
	"github.com/preston-bernstein/team-ledger/internal/timeutil"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	docs          *docstore.Store
	services      app.Services
	httpServer    httpServer
	metricsServer httpServer
	runner        Runner
	metricsStop   func(context.Context) error
}

// New constructs a server over the document store in cfg.DataDir.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(cfg, logger, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	docs, svcs, err := buildServices(cfg, logger, recorder)
	if err != nil {
		return nil, err
	}
	runner, err := buildRunner(cfg, svcs, logger, recorder)
	if err != nil {
		return nil, err
	}
	httpSrv := buildHTTPServer(cfg, svcs, logger, recorder, runner)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		docs:          docs,
		services:      svcs,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		runner:        runner,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, runner Runner) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		runner:     runner,
	}
}

func buildServices(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*docstore.Store, app.Services, error) {
	docs := docstore.NewStore(cfg.DataDir, logger, recorder)
	if err := docs.Init(); err != nil {
		return nil, app.Services{}, fmt.Errorf("init data dir %s: %w", cfg.DataDir, err)
	}
	loc := timeutil.ResolveTimezone(cfg.Timezone)
	if cfg.Timezone != "" && loc == nil {
		logging.Warn(context.Background(), logger, "unknown timezone, using host zone", "timezone", cfg.Timezone)
	}
	return docs, app.NewServices(store.NewLedger(docs), logger, loc), nil
}

func buildRunner(cfg config.Config, svcs app.Services, logger *slog.Logger, recorder *metrics.Recorder) (Runner, error) {
	if !cfg.Maintenance.Enabled {
		return nil, nil
	}
	r, err := maintenance.New(svcs.Sessions, logger, recorder, cfg.Maintenance.Schedule)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func buildHTTPServer(cfg config.Config, svcs app.Services, logger *slog.Logger, recorder *metrics.Recorder, runner Runner) httpServer {
	var statusFn func() maintenance.Status
	renumber := handlers.RenumberFunc(svcs.Sessions.RenumberTitles)
	if runner != nil {
		statusFn = runner.Status
		renumber = runner.RunOnce
	}

	handler := handlers.NewHandler(handlers.Services{
		Players:    svcs.Players,
		Sessions:   svcs.Sessions,
		Games:      svcs.Games,
		Attendance: svcs.Attendance,
		Drills:     svcs.Drills,
	}, logger, statusFn)
	maint := handlers.NewMaintenanceHandler(renumber, logger)
	router := httpserver.NewRouter(handler, maint)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	limits := resolveTimeouts(cfg.HTTP)
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  limits.read,
		WriteTimeout: limits.write,
		IdleTimeout:  limits.idle,
	}

	return netHTTPServer{srv: srv}
}

// Run starts maintenance and the HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.runner != nil {
		if err := s.runner.Start(ctx); err != nil && s.logger != nil {
			s.logger.Error("maintenance failed to start", "error", err)
		}
	}

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting",
			slog.String("addr", s.httpServer.Addr()),
			slog.String("data_dir", s.cfg.DataDir),
		)
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), resolveTimeouts(s.cfg.HTTP).shutdown)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	// Stop maintenance after HTTP so an in-flight renumber request finishes first.
	if s.runner != nil {
		if err := s.runner.Stop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Error("failed to stop maintenance", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
