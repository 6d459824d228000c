// Package entry implements the time-entry repository using PostgreSQL.
package entry

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qiwenzhou/mytime-backend/internal/adapter/postgres"
	"github.com/qiwenzhou/mytime-backend/internal/domain"
)

const table = "time_entries"

var columns = []string{
	"id", "activity", "goal_id", "category_id",
	"start_time", "end_time", "created_at", "updated_at", "deleted_at",
}

// Repo provides time-entry persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new time-entry repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{db: pool}
}

// GetByID returns an entry by primary key, including soft-deleted ones.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeEntry, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	e, err := scanEntry(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err, id)
	}
	return e, nil
}

// List returns entries matching the filter, ordered by start time ascending.
// Soft-deleted entries are always excluded.
func (r *Repo) List(ctx context.Context, filter domain.EntryFilter) ([]domain.TimeEntry, error) {
	q := postgres.Builder().
		Select(columns...).
		From(table).
		Where("deleted_at IS NULL").
		OrderBy("start_time ASC")

	if filter.Range != nil {
		q = q.Where(squirrel.GtOrEq{"start_time": filter.Range.Start}).
			Where(squirrel.LtOrEq{"start_time": filter.Range.End})
	}
	if len(filter.GoalIDs) > 0 {
		q = q.Where(squirrel.Eq{"goal_id": filter.GoalIDs})
	}
	if len(filter.CategoryIDs) > 0 {
		q = q.Where(squirrel.Eq{"category_id": filter.CategoryIDs})
	}
	if filter.EndedOnly {
		q = q.Where("end_time IS NOT NULL")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.TimeEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Create inserts an entry and returns the stored row.
func (r *Repo) Create(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error) {
	if e == nil {
		return nil, domain.NewValidationError("entry", "is required")
	}
	if e.Activity == "" {
		return nil, domain.NewValidationError("activity", "is required")
	}

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("activity", "goal_id", "category_id", "start_time", "end_time").
		Values(e.Activity, e.GoalID, e.CategoryID, e.StartTime, e.EndTime).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	created, err := scanEntry(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err, uuid.Nil)
	}
	return created, nil
}

// LinkGoal sets the goal reference of an entry. A nil goalID unlinks.
func (r *Repo) LinkGoal(ctx context.Context, id uuid.UUID, goalID *uuid.UUID) error {
	sql, args, err := postgres.Builder().
		Update(table).
		Set("goal_id", goalID).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(err, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// HardDeleteOld physically removes entries soft-deleted before the
// threshold. Returns the number of rows removed.
func (r *Repo) HardDeleteOld(ctx context.Context, threshold time.Time) (int64, error) {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where("deleted_at IS NOT NULL").
		Where(squirrel.Lt{"deleted_at": threshold}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("hard delete entries: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete soft-deletes an entry.
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
		return mapError(err, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
