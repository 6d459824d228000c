package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/qiwenzhou/mytime-backend/internal/domain"
)

func TestService_Trend_ByCategory(t *testing.T) {
	t.Parallel()

	gym := mkGoal("健身")
	catID := uuid.New()
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	entry := mkEntry(&gym.ID, day.Add(7*time.Hour), 60)
	entry.CategoryID = &catID

	svc := newAnalyzeService([]domain.TimeEntry{entry}, []domain.Goal{gym})

	series, err := svc.Trend(context.Background(), analyzeRange(), domain.TrendDaily, KeyByCategory)
	if err != nil {
		t.Fatalf("Trend: %v", err)
	}
	if len(series.Buckets) != 7 {
		t.Fatalf("got %d buckets, want 7", len(series.Buckets))
	}
	if len(series.Keys) == 0 {
		t.Fatal("expected at least the uncategorized key")
	}
	if series.Keys[len(series.Keys)-1].Key != domain.UncategorizedKey {
		t.Errorf("last key = %q, want %q", series.Keys[len(series.Keys)-1].Key, domain.UncategorizedKey)
	}
}

func TestService_Trend_ByCluster(t *testing.T) {
	t.Parallel()

	thesis := mkGoal("写论文")
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	entries := []domain.TimeEntry{mkEntry(&thesis.ID, day.Add(9*time.Hour), 120)}

	svc := newAnalyzeService(entries, []domain.Goal{thesis})

	series, err := svc.Trend(context.Background(), analyzeRange(), domain.TrendDaily, KeyByCluster)
	if err != nil {
		t.Fatalf("Trend: %v", err)
	}

	var found bool
	for _, k := range series.Keys {
		if k.Name == "写论文" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a cluster key named 写论文, keys = %+v", series.Keys)
	}
}

func TestService_Trend_InvalidKeying(t *testing.T) {
	t.Parallel()

	svc := newAnalyzeService(nil, nil)

	_, err := svc.Trend(context.Background(), analyzeRange(), domain.TrendDaily, TrendKeying("goal"))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestService_Suggestions(t *testing.T) {
	t.Parallel()

	thesis := mkGoal("写论文")
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	entries := []domain.TimeEntry{
		mkEntry(&thesis.ID, day.Add(9*time.Hour), 120),
		mkOrphan("写论文初稿", day.Add(14*time.Hour), 60),
	}

	svc := newAnalyzeService(entries, []domain.Goal{thesis})

	suggestions, err := svc.Suggestions(context.Background(), analyzeRange(), 10)
	if err != nil {
		t.Fatalf("Suggestions: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(suggestions))
	}
	if suggestions[0].ClusterName != "写论文" {
		t.Errorf("suggested cluster = %q, want 写论文", suggestions[0].ClusterName)
	}
}

func TestService_Suggestions_NegativeLimit(t *testing.T) {
	t.Parallel()

	svc := newAnalyzeService(nil, nil)

	_, err := svc.Suggestions(context.Background(), analyzeRange(), -1)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}
