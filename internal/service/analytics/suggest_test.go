package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/qiwenzhou/mytime-backend/internal/domain"
)

func mkOrphan(activity string, start time.Time, minutes int) domain.TimeEntry {
	end := start.Add(time.Duration(minutes) * time.Minute)
	return domain.TimeEntry{
		ID:        uuid.New(),
		StartTime: start,
		EndTime:   &end,
		Activity:  activity,
	}
}

func TestFindUnlinkedSuggestions_Basic(t *testing.T) {
	day := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	thesis := domain.GoalCluster{
		ID:       uuid.New(),
		Name:     "写论文",
		Keywords: []string{"写论文", "论文"},
	}
	gym := domain.GoalCluster{
		ID:       uuid.New(),
		Name:     "健身",
		Keywords: []string{"健身"},
	}

	entries := []domain.TimeEntry{
		mkOrphan("改论文", day, 45),
		mkOrphan("买菜做饭", day.Add(time.Hour), 30),
	}

	got := FindUnlinkedSuggestions(entries, []domain.GoalCluster{thesis, gym}, 0)
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(got))
	}

	s := got[0]
	if s.ClusterID != thesis.ID {
		t.Errorf("suggested cluster = %s, want thesis", s.ClusterName)
	}
	if s.EntryID != entries[0].ID {
		t.Error("suggestion should reference the matching orphan entry")
	}
	if s.Confidence <= suggestionThreshold || s.Confidence > 1 {
		t.Errorf("confidence = %v, want in (%v, 1]", s.Confidence, suggestionThreshold)
	}
	if len(s.Keywords) == 0 || s.Keywords[0] != "论文" {
		t.Errorf("matched keywords = %v, want the 论文 overlap", s.Keywords)
	}
	if s.DurationMinutes != 45 {
		t.Errorf("DurationMinutes = %d, want 45", s.DurationMinutes)
	}
}

func TestFindUnlinkedSuggestions_SkipsLinkedAndRunningEntries(t *testing.T) {
	day := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	goalID := uuid.New()
	cluster := domain.GoalCluster{ID: uuid.New(), Name: "论文", Keywords: []string{"论文"}}

	linked := mkOrphan("论文", day, 60)
	linked.GoalID = &goalID

	running := domain.TimeEntry{ID: uuid.New(), StartTime: day, Activity: "论文"}

	got := FindUnlinkedSuggestions([]domain.TimeEntry{linked, running}, []domain.GoalCluster{cluster}, 0)
	if len(got) != 0 {
		t.Errorf("linked and in-progress entries must be skipped, got %d suggestions", len(got))
	}
}

func TestFindUnlinkedSuggestions_RequiresVerbatimKeywordHit(t *testing.T) {
	day := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	// High notional similarity is not enough without a verbatim token hit.
	cluster := domain.GoalCluster{ID: uuid.New(), Name: "reading", Keywords: []string{"books"}}

	got := FindUnlinkedSuggestions([]domain.TimeEntry{mkOrphan("book", day, 30)}, []domain.GoalCluster{cluster}, 0)
	if len(got) != 0 {
		t.Errorf("no verbatim keyword overlap: expected no suggestion, got %d", len(got))
	}
}

func TestFindUnlinkedSuggestions_SortedAndCapped(t *testing.T) {
	day := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	cluster := domain.GoalCluster{
		ID:       uuid.New(),
		Name:     "reading",
		Keywords: []string{"reading", "books"},
	}

	entries := []domain.TimeEntry{
		mkOrphan("reading notes", day, 30),          // partial overlap
		mkOrphan("reading books", day.Add(1), 30),   // full overlap, highest
		mkOrphan("books backlog", day.Add(2), 30),   // partial overlap
		mkOrphan("reading session", day.Add(3), 30), // partial overlap
	}

	got := FindUnlinkedSuggestions(entries, []domain.GoalCluster{cluster}, 2)
	if len(got) != 2 {
		t.Fatalf("limit 2: got %d suggestions", len(got))
	}
	if got[0].Activity != "reading books" {
		t.Errorf("highest-confidence suggestion = %q, want 'reading books'", got[0].Activity)
	}
	if got[0].Confidence < got[1].Confidence {
		t.Error("suggestions must be sorted by confidence descending")
	}
}

func TestFindUnlinkedSuggestions_BestClusterWins(t *testing.T) {
	day := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	weak := domain.GoalCluster{ID: uuid.New(), Name: "weak", Keywords: []string{"论文", "健身", "跑步", "做饭"}}
	strong := domain.GoalCluster{ID: uuid.New(), Name: "strong", Keywords: []string{"论文"}}

	got := FindUnlinkedSuggestions([]domain.TimeEntry{mkOrphan("论文", day, 30)}, []domain.GoalCluster{weak, strong}, 0)
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(got))
	}
	if got[0].ClusterID != strong.ID {
		t.Errorf("best candidate = %s, want the higher-Jaccard cluster", got[0].ClusterName)
	}
}

func TestFindUnlinkedSuggestions_EmptyInputs(t *testing.T) {
	if got := FindUnlinkedSuggestions(nil, nil, 0); len(got) != 0 {
		t.Errorf("empty inputs should yield an empty slice, got %d", len(got))
	}
}
