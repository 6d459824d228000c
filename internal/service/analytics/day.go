package analytics

import (
	"math"
	"time"
)

// DateOf returns midnight of t's calendar day in the given location.
func DateOf(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// WeekStart returns midnight of the Monday of t's calendar week in the given
// location.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	day := DateOf(t, loc)
	// time.Weekday puts Sunday at 0; shift so Monday opens the week.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// ParseTimezone parses an IANA timezone name, returning UTC as fallback.
func ParseTimezone(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// daysBetween returns the number of calendar days from a to b. Both must
// already be midnights in the same location; rounding absorbs DST-shortened
// or -lengthened days.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
