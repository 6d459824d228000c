package analytics

import (
	"sort"

	"github.com/qiwenzhou/mytime-backend/internal/domain"
)

// BuildOverview summarizes how recorded time distributes across clusters.
// Clusters with no recorded time are omitted; shares always sum to 1 when
// any time was recorded. This is the distribution-style summary offered
// alongside per-cluster health so callers can pick either view.
func BuildOverview(clusters []domain.GoalCluster, stats []domain.ClusterStats) domain.OverviewStats {
	overview := domain.OverviewStats{Distribution: []domain.ClusterShare{}}

	for i := range stats {
		overview.TotalMinutes += stats[i].TotalDuration
	}
	if overview.TotalMinutes == 0 {
		return overview
	}

	for i := range clusters {
		if i >= len(stats) || stats[i].TotalDuration == 0 {
			continue
		}
		overview.Distribution = append(overview.Distribution, domain.ClusterShare{
			ClusterID: clusters[i].ID,
			Name:      clusters[i].Name,
			Minutes:   stats[i].TotalDuration,
			Share:     float64(stats[i].TotalDuration) / float64(overview.TotalMinutes),
		})
	}

	sort.SliceStable(overview.Distribution, func(i, j int) bool {
		return overview.Distribution[i].Minutes > overview.Distribution[j].Minutes
	})
	return overview
}
