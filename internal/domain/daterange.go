package domain

import "time"

// DateRange is an inclusive analysis window supplied by the caller
// (UI or the chat-intent parser).
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Validate checks that the range is well-formed.
func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return NewValidationError("dateRange", "start and end are required")
	}
	if r.End.Before(r.Start) {
		return NewValidationError("dateRange", "end before start")
	}
	return nil
}

// Contains reports whether t falls inside the range (inclusive).
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}
