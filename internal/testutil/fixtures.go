package testutil

import (
	domainattendance "github.com/preston-bernstein/team-ledger/internal/domain/attendance"
	domaindrills "github.com/preston-bernstein/team-ledger/internal/domain/drills"
	domaingames "github.com/preston-bernstein/team-ledger/internal/domain/games"
	domainplayers "github.com/preston-bernstein/team-ledger/internal/domain/players"
	domainsessions "github.com/preston-bernstein/team-ledger/internal/domain/sessions"
)

// SamplePlayerInput returns a valid player input with the given names.
func SamplePlayerInput(first, last string) domainplayers.Input {
	jersey := 7
	return domainplayers.Input{
		FirstName:    first,
		LastName:     last,
		JerseyNumber: &jersey,
		Positions:    domainplayers.Positions{domainplayers.LeftWing},
	}
}

// SampleSessionInput returns a one-off training session at date and start.
func SampleSessionInput(date, start string) domainsessions.Input {
	return domainsessions.Input{
		Date:       date,
		StartTime:  start,
		EndTime:    "20:00",
		Location:   "Main hall",
		Objectives: []domainsessions.Objective{domainsessions.Attack},
	}
}

// SampleWeeklyInput returns a weekly series template.
func SampleWeeklyInput(date, start, endDate string) domainsessions.Input {
	in := SampleSessionInput(date, start)
	in.RecurringPattern = domainsessions.PatternWeekly
	in.RecurringEndDate = endDate
	return in
}

// SampleGameInput returns a valid home game against opponent.
func SampleGameInput(date, opponent string) domaingames.Input {
	return domaingames.Input{
		Date:      date,
		StartTime: "18:00",
		Opponent:  opponent,
		Location:  "Main hall",
		HomeGame:  true,
	}
}

// SampleAttendanceInput marks player present at a training session.
func SampleAttendanceInput(playerID, sessionID string) domainattendance.Input {
	return domainattendance.Input{
		PlayerID:    playerID,
		SessionID:   sessionID,
		SessionType: domainattendance.SessionTraining,
		Status:      domainattendance.StatusPresent,
	}
}

// SampleDrillInput returns a valid drill with the given name.
func SampleDrillInput(name string) domaindrills.Input {
	return domaindrills.Input{
		Name:       name,
		Objectives: []string{"passing"},
		Category:   "warm-up",
	}
}
