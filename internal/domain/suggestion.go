package domain

import (
	"time"

	"github.com/google/uuid"
)

// UnlinkedEventSuggestion proposes linking an orphan time entry (no goal) to
// an existing goal cluster, ranked by confidence.
type UnlinkedEventSuggestion struct {
	EntryID         uuid.UUID
	Activity        string
	Date            time.Time
	DurationMinutes int
	ClusterID       uuid.UUID
	ClusterName     string
	Confidence      float64  // (0,1]
	Keywords        []string // the matched keyword subset
}
