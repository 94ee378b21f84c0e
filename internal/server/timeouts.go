package server

import (
	"time"

	"github.com/preston-bernstein/team-ledger/internal/config"
)

const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// timeouts are the resolved limits for the API server and its shutdown.
type timeouts struct {
	read     time.Duration
	write    time.Duration
	idle     time.Duration
	shutdown time.Duration
}

func resolveTimeouts(cfg config.HTTPConfig) timeouts {
	return timeouts{
		read:     positiveOr(cfg.ReadTimeout, defaultReadTimeout),
		write:    positiveOr(cfg.WriteTimeout, defaultWriteTimeout),
		idle:     positiveOr(cfg.IdleTimeout, defaultIdleTimeout),
		shutdown: positiveOr(cfg.ShutdownTimeout, defaultShutdownTimeout),
	}
}

func positiveOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
