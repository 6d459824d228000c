package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Sensitivity controls how aggressively automatic clustering merges goals.
type Sensitivity string

const (
	SensitivityLoose    Sensitivity = "LOOSE"
	SensitivityStandard Sensitivity = "STANDARD"
	SensitivityStrict   Sensitivity = "STRICT"
)

func (s Sensitivity) String() string { return string(s) }

func (s Sensitivity) IsValid() bool {
	switch s {
	case SensitivityLoose, SensitivityStandard, SensitivityStrict:
		return true
	}
	return false
}

// Threshold returns the minimum pairwise similarity required to merge two
// goals at this sensitivity. Unknown values fall back to the standard one.
// ParseSensitivity parses a case-insensitive sensitivity name.
func ParseSensitivity(raw string) (Sensitivity, bool) {
	s := Sensitivity(strings.ToUpper(raw))
	return s, s.IsValid()
}

func (s Sensitivity) Threshold() float64 {
	switch s {
	case SensitivityLoose:
		return 0.2
	case SensitivityStrict:
		return 0.5
	default:
		return 0.35
	}
}

// ClusterRule is a user-defined grouping rule. Rules are evaluated in
// ascending Priority order before automatic clustering runs; a goal whose
// name contains any rule keyword joins that rule's cluster.
type ClusterRule struct {
	ID       uuid.UUID
	Name     string
	Keywords []string
	Priority int
}

// ClusterSettings holds the user's clustering configuration.
type ClusterSettings struct {
	Sensitivity Sensitivity
	Rules       []ClusterRule
}

// GoalCluster is a group of goals considered the same underlying intent.
// Every goal belongs to at most one cluster per analysis run.
type GoalCluster struct {
	ID       uuid.UUID
	Name     string   // representative label
	Keywords []string // up to 10 tokens, ranked by cross-goal frequency
	GoalIDs  []uuid.UUID
	Goals    []Goal
	IsManual bool // produced by a ClusterRule rather than similarity
}
