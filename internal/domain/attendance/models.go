package attendance

import (
	"time"

	"github.com/preston-bernstein/team-ledger/internal/domain"
	"github.com/preston-bernstein/team-ledger/internal/validation"
)

// Status is a player's attendance at one session.
type Status string

const (
	StatusPresent       Status = "PRESENT"
	StatusAbsent        Status = "ABSENT"
	StatusLate          Status = "LATE"
	StatusExcused       Status = "EXCUSED"
	StatusNotApplicable Status = "NOT_APPLICABLE"
)

var knownStatuses = []Status{StatusPresent, StatusAbsent, StatusLate, StatusExcused, StatusNotApplicable}

// ParseStatus converts s into a known Status.
func ParseStatus(s string) (Status, error) {
	for _, st := range knownStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", domain.NewInputError("status", "must be one of PRESENT ABSENT LATE EXCUSED NOT_APPLICABLE")
}

// SessionType distinguishes training sessions from games.
type SessionType string

const (
	SessionTraining SessionType = "TRAINING"
	SessionGame     SessionType = "GAME"
)

// Record is one player's attendance at one session. At most one record exists
// per (PlayerID, SessionID).
type Record struct {
	ID          string      `json:"id"`
	PlayerID    string      `json:"playerId"`
	SessionID   string      `json:"sessionId"`
	SessionType SessionType `json:"sessionType"`
	Status      Status      `json:"status"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Key identifies a record by player and session.
type Key struct {
	PlayerID  string
	SessionID string
}

// Key returns the record's natural key.
func (r Record) Key() Key {
	return Key{PlayerID: r.PlayerID, SessionID: r.SessionID}
}

// Input is an upsert request for the (PlayerID, SessionID) record.
// A nil Notes leaves existing notes untouched.
type Input struct {
	PlayerID    string      `json:"playerId" validate:"required"`
	SessionID   string      `json:"sessionId" validate:"required"`
	SessionType SessionType `json:"sessionType" validate:"required,oneof=TRAINING GAME"`
	Status      Status      `json:"status" validate:"required,oneof=PRESENT ABSENT LATE EXCUSED NOT_APPLICABLE"`
	Notes       *string     `json:"notes,omitempty"`
}

// Validate checks ids and enum values.
func (in Input) Validate() error {
	return validation.Struct(in)
}

// Key returns the natural key the input targets.
func (in Input) Key() Key {
	return Key{PlayerID: in.PlayerID, SessionID: in.SessionID}
}

// NewRecord builds a Record from validated input.
func NewRecord(id string, in Input, now time.Time) Record {
	r := Record{
		ID:          id,
		PlayerID:    in.PlayerID,
		SessionID:   in.SessionID,
		SessionType: in.SessionType,
		Status:      in.Status,
		CreatedAt:   now,
	}
	if in.Notes != nil {
		r.Notes = *in.Notes
	}
	return r
}

// Merge applies an upsert over an existing record. ID and CreatedAt are kept.
func (in Input) Merge(r *Record) {
	r.SessionType = in.SessionType
	r.Status = in.Status
	if in.Notes != nil {
		r.Notes = *in.Notes
	}
}

// Filter narrows a listing; empty fields match everything.
type Filter struct {
	SessionID string
	PlayerID  string
}

// Matches reports whether r satisfies the filter.
func (f Filter) Matches(r Record) bool {
	if f.SessionID != "" && r.SessionID != f.SessionID {
		return false
	}
	if f.PlayerID != "" && r.PlayerID != f.PlayerID {
		return false
	}
	return true
}
