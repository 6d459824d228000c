package domain

import (
	"time"

	"github.com/google/uuid"
)

// HealthStatus is a recency-derived label summarizing whether a cluster is
// still being worked on.
type HealthStatus string

const (
	HealthActive  HealthStatus = "ACTIVE"  // last activity within 7 days
	HealthSlowing HealthStatus = "SLOWING" // last activity within 14 days
	HealthStalled HealthStatus = "STALLED" // older, or never active
)

func (h HealthStatus) String() string { return string(h) }

func (h HealthStatus) IsValid() bool {
	switch h {
	case HealthActive, HealthSlowing, HealthStalled:
		return true
	}
	return false
}

// ClusterStats holds per-cluster engagement metrics derived from the time
// entries linked to the cluster's goals. Durations are whole minutes.
type ClusterStats struct {
	ClusterID        uuid.UUID
	TotalDuration    int // minutes
	ActiveDays       int
	AvgDailyDuration int // minutes, 0 when ActiveDays is 0
	FirstActiveDate  *time.Time
	LastActiveDate   *time.Time
	LongestStreak    int // longest run of consecutive active days
	EntryCount       int
	Health           HealthStatus
}

// ClusterShare is one cluster's slice of the recorded-time distribution.
type ClusterShare struct {
	ClusterID uuid.UUID
	Name      string
	Minutes   int
	Share     float64 // fraction of total recorded minutes, (0,1]
}

// OverviewStats summarizes how recorded time is distributed across clusters.
type OverviewStats struct {
	TotalMinutes int
	Distribution []ClusterShare // sorted by Minutes descending
}
