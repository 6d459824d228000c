// Package category implements the category repository using PostgreSQL.
package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qiwenzhou/mytime-backend/internal/adapter/postgres"
	"github.com/qiwenzhou/mytime-backend/internal/domain"
)

const table = "categories"

var columns = []string{"id", "name", "sort_order"}

// Repo provides category persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new category repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{db: pool}
}

// ListOrdered returns all categories in display order.
func (r *Repo) ListOrdered(ctx context.Context) ([]domain.Category, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("sort_order ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

// GetByID returns a category by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	c, err := scanCategory(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "category", id)
	}
	return c, nil
}

// Create inserts a category and returns the stored row.
func (r *Repo) Create(ctx context.Context, name string, order int) (*domain.Category, error) {
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("name", "sort_order").
		Values(name, order).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	c, err := scanCategory(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "category", uuid.Nil)
	}
	return c, nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.Name, &c.Order)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
