package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qiwenzhou/mytime-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedCategory creates a category and returns the filled domain.Category.
func SeedCategory(t *testing.T, pool *pgxpool.Pool, name string, order int) domain.Category {
	t.Helper()

	if name == "" {
		name = "category-" + uniqueSuffix()
	}

	var c domain.Category
	err := pool.QueryRow(context.Background(),
		`INSERT INTO categories (name, sort_order) VALUES ($1, $2)
		 RETURNING id, name, sort_order`,
		name, order,
	).Scan(&c.ID, &c.Name, &c.Order)
	if err != nil {
		t.Fatalf("testhelper: SeedCategory: %v", err)
	}
	return c
}

// SeedGoal creates a goal for the given calendar day.
func SeedGoal(t *testing.T, pool *pgxpool.Pool, name string, date time.Time) domain.Goal {
	t.Helper()

	var g domain.Goal
	err := pool.QueryRow(context.Background(),
		`INSERT INTO goals (name, goal_date) VALUES ($1, $2)
		 RETURNING id, name, goal_date, created_at, updated_at, deleted_at`,
		name, date,
	).Scan(&g.ID, &g.Name, &g.Date, &g.CreatedAt, &g.UpdatedAt, &g.DeletedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedGoal: %v", err)
	}
	return g
}

// SeedEntry creates a finished time entry of the given duration.
// goalID and categoryID may be nil for orphan entries.
func SeedEntry(t *testing.T, pool *pgxpool.Pool, activity string, goalID, categoryID *uuid.UUID, start time.Time, minutes int) domain.TimeEntry {
	t.Helper()

	end := start.Add(time.Duration(minutes) * time.Minute)

	var e domain.TimeEntry
	err := pool.QueryRow(context.Background(),
		`INSERT INTO time_entries (activity, goal_id, category_id, start_time, end_time)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, activity, goal_id, category_id, start_time, end_time, created_at, updated_at, deleted_at`,
		activity, goalID, categoryID, start, end,
	).Scan(&e.ID, &e.Activity, &e.GoalID, &e.CategoryID, &e.StartTime, &e.EndTime, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedEntry: %v", err)
	}
	return e
}

// SeedRunningEntry creates an entry without an end time.
func SeedRunningEntry(t *testing.T, pool *pgxpool.Pool, activity string, start time.Time) domain.TimeEntry {
	t.Helper()

	var e domain.TimeEntry
	err := pool.QueryRow(context.Background(),
		`INSERT INTO time_entries (activity, start_time)
		 VALUES ($1, $2)
		 RETURNING id, activity, goal_id, category_id, start_time, end_time, created_at, updated_at, deleted_at`,
		activity, start,
	).Scan(&e.ID, &e.Activity, &e.GoalID, &e.CategoryID, &e.StartTime, &e.EndTime, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedRunningEntry: %v", err)
	}
	return e
}

// SeedRule creates a cluster rule.
func SeedRule(t *testing.T, pool *pgxpool.Pool, name string, keywords []string, priority int) domain.ClusterRule {
	t.Helper()

	var r domain.ClusterRule
	err := pool.QueryRow(context.Background(),
		`INSERT INTO cluster_rules (name, keywords, priority) VALUES ($1, $2, $3)
		 RETURNING id, name, keywords, priority`,
		name, keywords, priority,
	).Scan(&r.ID, &r.Name, &r.Keywords, &r.Priority)
	if err != nil {
		t.Fatalf("testhelper: SeedRule: %v", err)
	}
	return r
}

// Truncate removes all rows from the given tables. Use it at the start of a
// test that needs an empty database slice.
func Truncate(t *testing.T, pool *pgxpool.Pool, tables ...string) {
	t.Helper()

	for _, table := range tables {
		if _, err := pool.Exec(context.Background(), "TRUNCATE "+table+" CASCADE"); err != nil {
			t.Fatalf("testhelper: truncate %s: %v", table, err)
		}
	}
}
