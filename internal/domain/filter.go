package domain

import "github.com/google/uuid"

// EntryFilter defines parameters for loading time entries from storage.
// Zero values mean "no filter".
type EntryFilter struct {
	// Range limits entries by StartTime (inclusive).
	Range *DateRange

	// GoalIDs limits entries to those linked to any of the given goals.
	GoalIDs []uuid.UUID

	// CategoryIDs limits entries to any of the given categories.
	CategoryIDs []uuid.UUID

	// EndedOnly excludes entries that are still running.
	EndedOnly bool
}
