// Package recurrence expands a recurring training-session request into dated occurrences.
package recurrence

import (
	"time"

	"github.com/preston-bernstein/team-ledger/internal/domain"
	"github.com/preston-bernstein/team-ledger/internal/domain/sessions"
	"github.com/preston-bernstein/team-ledger/internal/timeutil"
)

// IsRecurring reports whether in should go through Expand.
func IsRecurring(in sessions.Input) bool {
	return in.IsRecurring()
}

// Expand returns one input per occurrence of template, in date order, each
// stamped with recurringID. A non-recurring template yields itself as a
// standalone request. An end date before the start date, or a custom pattern
// without weekdays, yields no occurrences.
func Expand(template sessions.Input, recurringID string) ([]sessions.Input, error) {
	if !template.IsRecurring() {
		return []sessions.Input{template.Standalone()}, nil
	}

	start, err := timeutil.ParseDate(template.Date)
	if err != nil {
		return nil, domain.NewInputError("date", "must use the 2006-01-02 layout")
	}
	end, err := timeutil.ParseDate(template.RecurringEndDate)
	if err != nil {
		return nil, domain.NewInputError("recurringEndDate", "must use the 2006-01-02 layout")
	}
	if end.Before(start) {
		return []sessions.Input{}, nil
	}

	var dates []time.Time
	switch template.RecurringPattern {
	case sessions.PatternWeekly:
		dates = weekly(start, end)
	case sessions.PatternCustom:
		days, err := weekdays(template.RecurringDays)
		if err != nil {
			return nil, err
		}
		dates = custom(start, end, days)
	}

	out := make([]sessions.Input, 0, len(dates))
	for _, d := range dates {
		occ := template
		occ.Date = timeutil.FormatDate(d)
		occ.RecurringID = recurringID
		occ.RecurringDays = append([]int(nil), template.RecurringDays...)
		out = append(out, occ)
	}
	return out, nil
}

func weekly(start, end time.Time) []time.Time {
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 7) {
		dates = append(dates, d)
	}
	return dates
}

// custom walks day by day from the Sunday on or before start, so the first
// week only emits days on or after start.
func custom(start, end time.Time, days map[time.Weekday]bool) []time.Time {
	if len(days) == 0 {
		return nil
	}
	var dates []time.Time
	for d := timeutil.StartOfWeek(start); !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Before(start) || !days[d.Weekday()] {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

func weekdays(raw []int) (map[time.Weekday]bool, error) {
	days := make(map[time.Weekday]bool, len(raw))
	for _, d := range raw {
		if d < 0 || d > 6 {
			return nil, domain.NewInputError("recurringDays", "must be weekday indices 0-6")
		}
		days[time.Weekday(d)] = true
	}
	return days, nil
}
