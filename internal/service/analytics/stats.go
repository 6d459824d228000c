package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/qiwenzhou/mytime-backend/internal/domain"
)

// Health thresholds in days since last activity, measured against "now"
// rather than the analysis window end.
const (
	healthActiveWithinDays  = 7
	healthSlowingWithinDays = 14
)

// CalculateClusterStats derives engagement metrics for one cluster from the
// given (already date-filtered) entries. Entries not linked to one of the
// cluster's goals are ignored. Degenerate input yields an all-zero record
// with STALLED health rather than an error.
func (s *Service) CalculateClusterStats(cluster domain.GoalCluster, entries []domain.TimeEntry) domain.ClusterStats {
	return calculateClusterStats(cluster, entries, s.loc, s.clock.Now())
}

func calculateClusterStats(cluster domain.GoalCluster, entries []domain.TimeEntry, loc *time.Location, now time.Time) domain.ClusterStats {
	memberIDs := map[string]struct{}{}
	for _, id := range cluster.GoalIDs {
		memberIDs[id.String()] = struct{}{}
	}

	stats := domain.ClusterStats{ClusterID: cluster.ID, Health: domain.HealthStalled}

	totalMinutes := 0.0
	activeDates := map[time.Time]struct{}{}
	var first, last *time.Time

	for i := range entries {
		e := &entries[i]
		if !e.Eligible() || e.GoalID == nil {
			continue
		}
		if _, ok := memberIDs[e.GoalID.String()]; !ok {
			continue
		}

		stats.EntryCount++

		m := e.EndTime.Sub(e.StartTime).Minutes()
		if m > 0 {
			totalMinutes += m
		}

		activeDates[DateOf(e.StartTime, loc)] = struct{}{}

		start := e.StartTime
		if first == nil || start.Before(*first) {
			t := start
			first = &t
		}
		if last == nil || start.After(*last) {
			t := start
			last = &t
		}
	}

	if stats.EntryCount == 0 {
		return stats
	}

	// Durations are rounded to whole minutes once, at this component's
	// boundary, not accumulated as integers along the way.
	stats.TotalDuration = int(math.Round(totalMinutes))
	stats.ActiveDays = len(activeDates)
	if stats.ActiveDays > 0 {
		stats.AvgDailyDuration = int(math.Round(totalMinutes / float64(stats.ActiveDays)))
	}
	stats.FirstActiveDate = first
	stats.LastActiveDate = last
	stats.LongestStreak = longestStreak(activeDates)
	stats.Health = healthStatus(last, loc, now)

	return stats
}

// longestStreak returns the length of the longest run of consecutive
// calendar days in the set. Empty set → 0, single day → 1.
func longestStreak(dates map[time.Time]struct{}) int {
	if len(dates) == 0 {
		return 0
	}

	sorted := make([]time.Time, 0, len(dates))
	for d := range dates {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if daysBetween(sorted[i-1], sorted[i]) == 1 {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	return longest
}

// healthStatus labels a cluster by days since its last activity.
func healthStatus(last *time.Time, loc *time.Location, now time.Time) domain.HealthStatus {
	if last == nil {
		return domain.HealthStalled
	}
	days := daysBetween(DateOf(*last, loc), DateOf(now, loc))
	switch {
	case days <= healthActiveWithinDays:
		return domain.HealthActive
	case days <= healthSlowingWithinDays:
		return domain.HealthSlowing
	default:
		return domain.HealthStalled
	}
}
