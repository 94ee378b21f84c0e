// Package store provides the entity repositories backed by document store collections.
// Every operation is a full read-modify-write of one collection file.
package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/team-ledger/internal/docstore"
)

// Collection file names under the data directory.
const (
	PlayersCollection    = "players"
	SessionsCollection   = "training-sessions"
	GamesCollection      = "games"
	AttendanceCollection = "attendance"
	DrillsCollection     = "drills"
)

// Option customizes repository construction.
type Option func(*options)

type options struct {
	newID func() string
	now   func() time.Time
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator overrides the id source.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		if newID != nil {
			o.newID = newID
		}
	}
}

// NewID returns a time-ordered UUIDv7 string.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func buildOptions(opts []Option) options {
	o := options{newID: NewID, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Ledger groups the repositories sharing one document store.
type Ledger struct {
	Players    *PlayerRepository
	Sessions   *SessionRepository
	Games      *GameRepository
	Attendance *AttendanceRepository
	Drills     *DrillRepository
}

// NewLedger wires every repository over docs.
func NewLedger(docs *docstore.Store, opts ...Option) *Ledger {
	return &Ledger{
		Players:    NewPlayerRepository(docs, opts...),
		Sessions:   NewSessionRepository(docs, opts...),
		Games:      NewGameRepository(docs, opts...),
		Attendance: NewAttendanceRepository(docs, opts...),
		Drills:     NewDrillRepository(docs, opts...),
	}
}

func indexOf[T any](items []T, id string, idOf func(T) string) int {
	for i := range items {
		if idOf(items[i]) == id {
			return i
		}
	}
	return -1
}
