// Package goal implements the goal repository using PostgreSQL.
package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qiwenzhou/mytime-backend/internal/adapter/postgres"
	"github.com/qiwenzhou/mytime-backend/internal/domain"
)

const table = "goals"

var columns = []string{"id", "name", "goal_date", "created_at", "updated_at", "deleted_at"}

// Repo provides goal persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new goal repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{db: pool}
}

// GetByID returns a goal by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	g, err := scanGoal(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "goal", id)
	}
	return g, nil
}

// ListAll returns the complete goal history, soft-deleted goals included.
// Clustering decides itself what to skip.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Goal, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("goal_date ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	return r.list(ctx, sql, args)
}

// ListByDateRange returns non-deleted goals whose date falls in the range.
func (r *Repo) ListByDateRange(ctx context.Context, rng domain.DateRange) ([]domain.Goal, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where("deleted_at IS NULL").
		Where(squirrel.GtOrEq{"goal_date": rng.Start}).
		Where(squirrel.LtOrEq{"goal_date": rng.End}).
		OrderBy("goal_date ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	return r.list(ctx, sql, args)
}

// Create inserts a goal and returns the stored row.
func (r *Repo) Create(ctx context.Context, name string, date time.Time) (*domain.Goal, error) {
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("name", "goal_date").
		Values(name, date).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	g, err := scanGoal(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "goal", uuid.Nil)
	}
	return g, nil
}

// Delete soft-deletes a goal.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := postgres.Builder().
		Update(table).
		Set("deleted_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "goal", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("goal %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *Repo) list(ctx context.Context, sql string, args []any) ([]domain.Goal, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	goals := make([]domain.Goal, 0)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

func scanGoal(row pgx.Row) (*domain.Goal, error) {
	var g domain.Goal
	err := row.Scan(&g.ID, &g.Name, &g.Date, &g.CreatedAt, &g.UpdatedAt, &g.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
