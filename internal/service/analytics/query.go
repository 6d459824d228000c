package analytics

import (
	"context"
	"fmt"

	"github.com/qiwenzhou/mytime-backend/internal/domain"
)

// TrendKeying selects which dimension a trend series is grouped by.
type TrendKeying string

const (
	KeyByCategory TrendKeying = "category"
	KeyByCluster  TrendKeying = "cluster"
)

// IsValid reports whether k names a known keying dimension.
func (k TrendKeying) IsValid() bool {
	return k == KeyByCategory || k == KeyByCluster
}

// Trend loads the entries for the range and aggregates them into an
// allocation series keyed by category or by goal cluster.
func (s *Service) Trend(ctx context.Context, rng domain.DateRange, gran domain.TrendGranularity, keying TrendKeying) (domain.TrendSeries, error) {
	if !keying.IsValid() {
		return domain.TrendSeries{}, domain.NewValidationError("keying", "must be category or cluster")
	}
	if err := rng.Validate(); err != nil {
		return domain.TrendSeries{}, err
	}

	entries, err := s.loadEligibleEntries(ctx, rng)
	if err != nil {
		return domain.TrendSeries{}, err
	}

	if keying == KeyByCategory {
		categories, err := s.categories.ListOrdered(ctx)
		if err != nil {
			return domain.TrendSeries{}, fmt.Errorf("load categories: %w", err)
		}
		return s.AggregateByCategory(entries, categories, rng, gran)
	}

	clusters, err := s.currentClusters(ctx)
	if err != nil {
		return domain.TrendSeries{}, err
	}
	return s.AggregateByCluster(entries, clusters, rng, gran)
}

// Suggestions loads the entries for the range, clusters the goal history,
// and returns link suggestions for entries without a goal.
func (s *Service) Suggestions(ctx context.Context, rng domain.DateRange, limit int) ([]domain.UnlinkedEventSuggestion, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, domain.NewValidationError("limit", "must not be negative")
	}

	entries, err := s.loadEligibleEntries(ctx, rng)
	if err != nil {
		return nil, err
	}

	clusters, err := s.currentClusters(ctx)
	if err != nil {
		return nil, err
	}

	return FindUnlinkedSuggestions(entries, clusters, limit), nil
}

func (s *Service) loadEligibleEntries(ctx context.Context, rng domain.DateRange) ([]domain.TimeEntry, error) {
	loaded, err := s.entries.List(ctx, domain.EntryFilter{Range: &rng, EndedOnly: true})
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	entries := make([]domain.TimeEntry, 0, len(loaded))
	for _, e := range loaded {
		if e.Eligible() {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (s *Service) currentClusters(ctx context.Context) ([]domain.GoalCluster, error) {
	settings, err := s.resolveSettings(ctx, nil)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load goals: %w", err)
	}
	return ClusterGoals(goals, settings), nil
}
