package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/team-ledger/internal/config"
	"github.com/preston-bernstein/team-ledger/internal/logging"
	"github.com/preston-bernstein/team-ledger/internal/server"
)

const (
	appVersion  = "dev"
	serviceName = "team-ledger"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, stop, config.Load(), os.Stdout); err != nil {
		stop()
		os.Exit(1)
	}
}

// run serves until ctx is cancelled. Setup failures are logged and returned.
func run(ctx context.Context, stop context.CancelFunc, cfg config.Config, out io.Writer) error {
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Service: serviceName,
		Version: appVersion,
		Output:  out,
	})

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("server setup failed", "error", err, "data_dir", cfg.DataDir)
		return err
	}
	srv.Run(ctx, stop)
	return nil
}
