package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/qiwenzhou/mytime-backend/internal/domain"
)

// AnalyzeInput parameterizes one end-to-end analysis run.
type AnalyzeInput struct {
	Range domain.DateRange

	// Settings overrides the stored cluster rules and default sensitivity
	// when non-nil.
	Settings *domain.ClusterSettings

	// IncludeTrends additionally computes the category- and cluster-keyed
	// daily allocation series.
	IncludeTrends bool

	// SuggestionLimit caps unlinked-entry suggestions; 0 means the default.
	SuggestionLimit int
}

// Validate checks the input.
func (in AnalyzeInput) Validate() error {
	if err := in.Range.Validate(); err != nil {
		return err
	}
	if in.SuggestionLimit < 0 {
		return domain.NewValidationError("suggestionLimit", "must not be negative")
	}
	return nil
}

// AnalyzeResult is the composed analysis output. Clusters and Stats are
// index-aligned and sorted by total duration descending.
type AnalyzeResult struct {
	Clusters      []domain.GoalCluster
	Stats         []domain.ClusterStats
	Suggestions   []domain.UnlinkedEventSuggestion
	Overview      domain.OverviewStats
	CategoryTrend *domain.TrendSeries
	ClusterTrend  *domain.TrendSeries
}

// AnalyzeGoals runs the full pipeline: load the date-filtered entries and the
// complete goal history, cluster the goals, compute per-cluster statistics,
// rank clusters by engagement, and derive suggestions, overview, and the
// requested trend series. Storage failures are wrapped and re-raised; there
// is no local recovery.
func (s *Service) AnalyzeGoals(ctx context.Context, input AnalyzeInput) (*AnalyzeResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	settings, err := s.resolveSettings(ctx, input.Settings)
	if err != nil {
		return nil, err
	}

	rng := input.Range
	entries, err := s.loadEligibleEntries(ctx, rng)
	if err != nil {
		return nil, err
	}

	// Clustering sees the full goal history: grouping quality depends on all
	// names, not only those inside the analysis window.
	goals, err := s.goals.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load goals: %w", err)
	}

	clusters := ClusterGoals(goals, settings)

	stats := make([]domain.ClusterStats, len(clusters))
	for i := range clusters {
		stats[i] = s.CalculateClusterStats(clusters[i], entries)
	}
	sortByEngagement(clusters, stats)

	result := &AnalyzeResult{
		Clusters:    clusters,
		Stats:       stats,
		Suggestions: FindUnlinkedSuggestions(entries, clusters, input.SuggestionLimit),
		Overview:    BuildOverview(clusters, stats),
	}

	if input.IncludeTrends {
		categories, err := s.categories.ListOrdered(ctx)
		if err != nil {
			return nil, fmt.Errorf("load categories: %w", err)
		}

		categoryTrend, err := s.AggregateByCategory(entries, categories, rng, domain.TrendDaily)
		if err != nil {
			return nil, err
		}
		clusterTrend, err := s.AggregateByCluster(entries, clusters, rng, domain.TrendDaily)
		if err != nil {
			return nil, err
		}
		result.CategoryTrend = &categoryTrend
		result.ClusterTrend = &clusterTrend
	}

	s.log.InfoContext(ctx, "goals analyzed",
		slog.Int("entries", len(entries)),
		slog.Int("goals", len(goals)),
		slog.Int("clusters", len(clusters)),
		slog.Int("suggestions", len(result.Suggestions)),
	)

	return result, nil
}

// resolveSettings uses the caller's settings when given, otherwise loads the
// stored rules and applies the configured default sensitivity.
func (s *Service) resolveSettings(ctx context.Context, override *domain.ClusterSettings) (domain.ClusterSettings, error) {
	if override != nil {
		settings := *override
		if !settings.Sensitivity.IsValid() {
			settings.Sensitivity = s.defaultSensitivity
		}
		return settings, nil
	}

	rules, err := s.rules.ListByPriority(ctx)
	if err != nil {
		return domain.ClusterSettings{}, fmt.Errorf("load cluster rules: %w", err)
	}
	return domain.ClusterSettings{Sensitivity: s.defaultSensitivity, Rules: rules}, nil
}

// sortByEngagement reorders clusters and their index-aligned stats together
// by total duration descending, stable for ties.
func sortByEngagement(clusters []domain.GoalCluster, stats []domain.ClusterStats) {
	idx := make([]int, len(clusters))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return stats[idx[a]].TotalDuration > stats[idx[b]].TotalDuration
	})

	sortedClusters := make([]domain.GoalCluster, len(clusters))
	sortedStats := make([]domain.ClusterStats, len(stats))
	for pos, i := range idx {
		sortedClusters[pos] = clusters[i]
		sortedStats[pos] = stats[i]
	}
	copy(clusters, sortedClusters)
	copy(stats, sortedStats)
}
