package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ClockLayout defines the canonical wall-clock format (HH:MM).
const ClockLayout = "15:04"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseClock parses an HH:MM time of day.
func ParseClock(value string) (time.Time, error) {
	return time.Parse(ClockLayout, value)
}

// Today returns the calendar date of now in loc (or now's own location when loc is nil).
func Today(now time.Time, loc *time.Location) string {
	if loc != nil {
		now = now.In(loc)
	}
	return FormatDate(now)
}

// StartOfWeek returns the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// ResolveTimezone returns a location for a tz string, or nil if invalid.
func ResolveTimezone(tz string) *time.Location {
	if tz == "" {
		return nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil
	}
	return loc
}
