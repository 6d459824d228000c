package domain

import (
	"time"

	"github.com/google/uuid"
)

// TimeEntry is a single recorded activity. EndTime is nil while the timer is
// still running; such entries never reach the analytics pipeline.
type TimeEntry struct {
	ID         uuid.UUID
	StartTime  time.Time
	EndTime    *time.Time
	Activity   string
	CategoryID *uuid.UUID
	GoalID     *uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

// IsDeleted returns true if the entry has been soft-deleted.
func (e *TimeEntry) IsDeleted() bool {
	return e.DeletedAt != nil
}

// Eligible reports whether the entry may participate in analytics:
// it must be finished and not soft-deleted.
func (e *TimeEntry) Eligible() bool {
	return e.EndTime != nil && !e.IsDeleted()
}

// DurationMinutes returns the entry duration in whole minutes.
// Negative durations (clock anomalies) are floored to 0.
func (e *TimeEntry) DurationMinutes() int {
	if e.EndTime == nil {
		return 0
	}
	m := int(e.EndTime.Sub(e.StartTime).Minutes())
	if m < 0 {
		return 0
	}
	return m
}
