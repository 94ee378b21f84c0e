// Package app assembles the ledger services around one shared lock.
package app

import (
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/team-ledger/internal/app/attendance"
	"github.com/preston-bernstein/team-ledger/internal/app/drills"
	"github.com/preston-bernstein/team-ledger/internal/app/games"
	"github.com/preston-bernstein/team-ledger/internal/app/players"
	"github.com/preston-bernstein/team-ledger/internal/app/sessions"
	"github.com/preston-bernstein/team-ledger/internal/store"
)

// Services holds one service per entity.
type Services struct {
	Players    *players.Service
	Sessions   *sessions.Service
	Games      *games.Service
	Attendance *attendance.Service
	Drills     *drills.Service
}

// NewServices wires services over ledger. Every mutation, including the
// player attendance back-fill, runs under the same lock. loc decides what
// "today" means for the back-fill; nil means the host zone.
func NewServices(ledger *store.Ledger, logger *slog.Logger, loc *time.Location) Services {
	lock := &sync.Mutex{}
	return Services{
		Players: players.NewService(players.Deps{
			Store:      ledger.Players,
			Sessions:   ledger.Sessions,
			Attendance: ledger.Attendance,
			Lock:       lock,
			Logger:     logger,
			Location:   loc,
		}),
		Sessions:   sessions.NewService(ledger.Sessions, lock, logger),
		Games:      games.NewService(ledger.Games, lock, logger),
		Attendance: attendance.NewService(ledger.Attendance, lock, logger),
		Drills:     drills.NewService(ledger.Drills, lock, logger),
	}
}
