package sessions

import (
	"time"

	"github.com/preston-bernstein/team-ledger/internal/validation"
)

// Objective is a tactical focus of a training session.
type Objective string

const (
	Attack      Objective = "ATTACK"
	Defense     Objective = "DEFENSE"
	Transitions Objective = "TRANSITIONS"
)

// Component is a coaching component of a training session.
type Component string

const (
	IndividualTactic  Component = "INDIVIDUAL_TACTIC"
	IndividualTechnic Component = "INDIVIDUAL_TECHNIC"
	GroupTactic       Component = "GROUP_TACTIC"
	CollectiveTactic  Component = "COLLECTIVE_TACTIC"
)

// Pattern describes how a session request repeats.
type Pattern string

const (
	PatternNone   Pattern = "none"
	PatternWeekly Pattern = "weekly"
	PatternCustom Pattern = "custom"
)

// Session is a dated training session. Sessions generated from one recurrence
// request share RecurringID; standalone sessions have PatternNone and no RecurringID.
type Session struct {
	ID               string      `json:"id"`
	Title            string      `json:"title,omitempty"`
	Date             string      `json:"date"`
	StartTime        string      `json:"startTime"`
	EndTime          string      `json:"endTime,omitempty"`
	Location         string      `json:"location,omitempty"`
	Objectives       []Objective `json:"objectives,omitempty"`
	Components       []Component `json:"components,omitempty"`
	Comments         string      `json:"comments,omitempty"`
	RecurringID      string      `json:"recurringId,omitempty"`
	RecurringPattern Pattern     `json:"recurringPattern,omitempty"`
	RecurringDays    []int       `json:"recurringDays,omitempty"`
	RecurringEndDate string      `json:"recurringEndDate,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// Before reports whether the session's (date, startTime) slot sorts strictly before the given slot.
// Both values are ISO-like strings, so lexicographic order is chronological.
func (s Session) Before(date, startTime string) bool {
	if s.Date != date {
		return s.Date < date
	}
	return s.StartTime < startTime
}

// Input carries the fields a caller supplies when creating sessions.
type Input struct {
	Title            string      `json:"title,omitempty"`
	Date             string      `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime        string      `json:"startTime" validate:"required,datetime=15:04"`
	EndTime          string      `json:"endTime,omitempty" validate:"omitempty,datetime=15:04"`
	Location         string      `json:"location,omitempty"`
	Objectives       []Objective `json:"objectives,omitempty" validate:"dive,oneof=ATTACK DEFENSE TRANSITIONS"`
	Components       []Component `json:"components,omitempty" validate:"dive,oneof=INDIVIDUAL_TACTIC INDIVIDUAL_TECHNIC GROUP_TACTIC COLLECTIVE_TACTIC"`
	Comments         string      `json:"comments,omitempty"`
	RecurringID      string      `json:"recurringId,omitempty" validate:"-"`
	RecurringPattern Pattern     `json:"recurringPattern,omitempty" validate:"omitempty,oneof=none weekly custom"`
	RecurringDays    []int       `json:"recurringDays,omitempty" validate:"dive,min=0,max=6"`
	RecurringEndDate string      `json:"recurringEndDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Validate checks required fields, formats and enum tags.
func (in Input) Validate() error {
	return validation.Struct(in)
}

// IsRecurring reports whether the request should be expanded into a series:
// a weekly or custom pattern with an end date.
func (in Input) IsRecurring() bool {
	if in.RecurringEndDate == "" {
		return false
	}
	return in.RecurringPattern == PatternWeekly || in.RecurringPattern == PatternCustom
}

// Standalone returns the input as a single non-recurring session request.
func (in Input) Standalone() Input {
	in.RecurringID = ""
	in.RecurringPattern = PatternNone
	in.RecurringDays = nil
	in.RecurringEndDate = ""
	return in
}

// NewSession builds a Session from validated input.
func NewSession(id string, in Input, now time.Time) Session {
	return Session{
		ID:               id,
		Title:            in.Title,
		Date:             in.Date,
		StartTime:        in.StartTime,
		EndTime:          in.EndTime,
		Location:         in.Location,
		Objectives:       in.Objectives,
		Components:       in.Components,
		Comments:         in.Comments,
		RecurringID:      in.RecurringID,
		RecurringPattern: in.RecurringPattern,
		RecurringDays:    in.RecurringDays,
		RecurringEndDate: in.RecurringEndDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Patch lists the updatable session fields. Recurrence metadata describes how
// a series was generated and is not editable.
type Patch struct {
	Title      *string     `json:"title,omitempty"`
	Date       *string     `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime  *string     `json:"startTime,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime    *string     `json:"endTime,omitempty" validate:"omitempty,datetime=15:04"`
	Location   *string     `json:"location,omitempty"`
	Objectives []Objective `json:"objectives,omitempty" validate:"dive,oneof=ATTACK DEFENSE TRANSITIONS"`
	Components []Component `json:"components,omitempty" validate:"dive,oneof=INDIVIDUAL_TACTIC INDIVIDUAL_TECHNIC GROUP_TACTIC COLLECTIVE_TACTIC"`
	Comments   *string     `json:"comments,omitempty"`
}

// Validate checks the supplied fields.
func (p Patch) Validate() error {
	if p.Date != nil && *p.Date == "" {
		return errRequiredDate
	}
	if p.StartTime != nil && *p.StartTime == "" {
		return errRequiredStart
	}
	return validation.Struct(p)
}

// Apply merges the patch over session and stamps UpdatedAt.
func (p Patch) Apply(s *Session, now time.Time) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Date != nil {
		s.Date = *p.Date
	}
	if p.StartTime != nil {
		s.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		s.EndTime = *p.EndTime
	}
	if p.Location != nil {
		s.Location = *p.Location
	}
	if p.Objectives != nil {
		s.Objectives = p.Objectives
	}
	if p.Components != nil {
		s.Components = p.Components
	}
	if p.Comments != nil {
		s.Comments = *p.Comments
	}
	s.UpdatedAt = now
}
