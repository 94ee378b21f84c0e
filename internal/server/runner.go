package server

import (
	"context"

	"github.com/preston-bernstein/team-ledger/internal/maintenance"
)

// Runner defines the maintenance behavior needed by the server.
type Runner interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Status() maintenance.Status
	RunOnce(ctx context.Context) (int, error)
}
