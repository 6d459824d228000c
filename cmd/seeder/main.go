// Command seeder populates the database with demo time-tracking data:
// categories, goals, cluster rules, and two weeks of time entries. It is
// intended for local development and demos, not for production.
//
// Flags:
//
//	--days    number of days of entries to generate (default: 14)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qiwenzhou/mytime-backend/internal/adapter/postgres"
	"github.com/qiwenzhou/mytime-backend/internal/adapter/postgres/category"
	"github.com/qiwenzhou/mytime-backend/internal/adapter/postgres/clusterrule"
	"github.com/qiwenzhou/mytime-backend/internal/adapter/postgres/entry"
	"github.com/qiwenzhou/mytime-backend/internal/adapter/postgres/goal"
	"github.com/qiwenzhou/mytime-backend/internal/app"
	"github.com/qiwenzhou/mytime-backend/internal/config"
	"github.com/qiwenzhou/mytime-backend/internal/domain"
)

// activities maps goal names to the entry activities generated for them.
var activities = map[string][]string{
	"write thesis draft":  {"write thesis draft", "thesis draft revision", "write thesis chapter 2"},
	"morning gym routine": {"morning gym routine", "gym leg day", "gym cardio session"},
	"learn spanish":       {"learn spanish vocabulary", "spanish listening practice"},
}

func main() {
	daysFlag := flag.Int("days", 14, "number of days of entries to generate")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := seed(ctx, logger, pool, *daysFlag); err != nil {
		logger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seeding completed")
}

func seed(ctx context.Context, logger *slog.Logger, pool *pgxpool.Pool, days int) error {
	categories := category.New(pool)
	goals := goal.New(pool)
	entries := entry.New(pool)
	rules := clusterrule.New(pool)

	work, err := categories.Create(ctx, "Work", 1)
	if err != nil {
		return err
	}
	health, err := categories.Create(ctx, "Health", 2)
	if err != nil {
		return err
	}
	study, err := categories.Create(ctx, "Study", 3)
	if err != nil {
		return err
	}
	categoryByGoal := map[string]uuid.UUID{
		"write thesis draft":  work.ID,
		"morning gym routine": health.ID,
		"learn spanish":       study.ID,
	}

	if _, err := rules.Create(ctx, domain.ClusterRule{
		Name:     "Thesis",
		Keywords: []string{"thesis"},
		Priority: 1,
	}); err != nil {
		return err
	}

	now := time.Now()
	for name, acts := range activities {
		g, err := goals.Create(ctx, name, now.AddDate(0, 0, -days))
		if err != nil {
			return err
		}
		catID := categoryByGoal[name]

		created := 0
		for d := 0; d < days; d++ {
			// Skip some days so streaks and gaps show up in the analysis.
			if rand.Intn(4) == 0 {
				continue
			}
			start := now.AddDate(0, 0, -d).Truncate(time.Hour).Add(-time.Duration(rand.Intn(8)) * time.Hour)
			end := start.Add(time.Duration(30+rand.Intn(90)) * time.Minute)
			if _, err := entries.Create(ctx, &domain.TimeEntry{
				Activity:   acts[rand.Intn(len(acts))],
				GoalID:     &g.ID,
				CategoryID: &catID,
				StartTime:  start,
				EndTime:    &end,
			}); err != nil {
				return err
			}
			created++
		}
		logger.Info("seeded goal",
			slog.String("goal", name),
			slog.Int("entries", created),
		)
	}

	// A few orphan entries for link suggestions.
	for _, activity := range []string{"thesis outline notes", "quick spanish review"} {
		start := now.Add(-2 * time.Hour)
		end := start.Add(45 * time.Minute)
		if _, err := entries.Create(ctx, &domain.TimeEntry{
			Activity:  activity,
			StartTime: start,
			EndTime:   &end,
		}); err != nil {
			return err
		}
	}

	return nil
}
