// Package analytics implements the time-allocation analytics engine: goal
// clustering, per-cluster engagement statistics, day/week allocation series
// with unrecorded-time inference, and orphan-entry link suggestions.
//
// All computation is pure and synchronous over freshly loaded snapshots;
// the only I/O happens in the repository loads performed by AnalyzeGoals.
package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/qiwenzhou/mytime-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type entryRepo interface {
	List(ctx context.Context, filter domain.EntryFilter) ([]domain.TimeEntry, error)
}

type goalRepo interface {
	ListAll(ctx context.Context) ([]domain.Goal, error)
}

type categoryRepo interface {
	ListOrdered(ctx context.Context) ([]domain.Category, error)
}

type ruleRepo interface {
	ListByPriority(ctx context.Context) ([]domain.ClusterRule, error)
}

// colorResolver resolves a display color for a series key. A missing mapping
// must not fail; the aggregator falls back to a default color.
type colorResolver interface {
	SeriesColor(key string) (string, bool)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service is the analysis orchestrator. Each call operates on its own
// snapshot; there is no shared mutable state between calls, so concurrent
// invocations are race-free by construction.
type Service struct {
	entries    entryRepo
	goals      goalRepo
	categories categoryRepo
	rules      ruleRepo
	colors     colorResolver
	clock      clockwork.Clock
	loc        *time.Location
	log        *slog.Logger

	defaultSensitivity domain.Sensitivity
}

// NewService creates the analytics service. clock must be injectable for
// deterministic tests; pass clockwork.NewRealClock() in production.
func NewService(
	log *slog.Logger,
	entries entryRepo,
	goals goalRepo,
	categories categoryRepo,
	rules ruleRepo,
	colors colorResolver,
	clock clockwork.Clock,
	loc *time.Location,
	defaultSensitivity domain.Sensitivity,
) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if loc == nil {
		loc = time.UTC
	}
	if !defaultSensitivity.IsValid() {
		defaultSensitivity = domain.SensitivityStandard
	}

	return &Service{
		entries:            entries,
		goals:              goals,
		categories:         categories,
		rules:              rules,
		colors:             colors,
		clock:              clock,
		loc:                loc,
		log:                log,
		defaultSensitivity: defaultSensitivity,
	}
}

func (s *Service) seriesColor(key string) string {
	if s.colors != nil {
		if c, ok := s.colors.SeriesColor(key); ok {
			return c
		}
	}
	return defaultSeriesColor
}
