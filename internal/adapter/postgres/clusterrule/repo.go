// Package clusterrule implements the cluster-rule repository using PostgreSQL.
package clusterrule

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

const table = "cluster_rules"

var columns = []string{"id", "name", "keywords", "priority"}

// Repo provides cluster-rule persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new cluster-rule repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{db: pool}
}

// ListByPriority returns all rules in ascending priority order, which is the
// order the manual clustering pass evaluates them in.
func (r *Repo) ListByPriority(ctx context.Context) ([]domain.ClusterRule, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("priority ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list cluster rules: %w", err)
	}
	defer rows.Close()

	rules := make([]domain.ClusterRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cluster rule: %w", err)
		}
		rules = append(rules, *rule)
	}
	return rules, rows.Err()
}

// Create inserts a rule and returns the stored row.
func (r *Repo) Create(ctx context.Context, rule domain.ClusterRule) (*domain.ClusterRule, error) {
	if rule.Name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	if len(rule.Keywords) == 0 {
		return nil, domain.NewValidationError("keywords", "at least one is required")
	}

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("name", "keywords", "priority").
		Values(rule.Name, rule.Keywords, rule.Priority).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	created, err := scanRule(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "cluster rule", uuid.Nil)
	}
	return created, nil
}

// Update replaces a rule's name, keywords, and priority.
func (r *Repo) Update(ctx context.Context, rule domain.ClusterRule) (*domain.ClusterRule, error) {
	if rule.Name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}

	sql, args, err := postgres.Builder().
		Update(table).
		Set("name", rule.Name).
		Set("keywords", rule.Keywords).
		Set("priority", rule.Priority).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": rule.ID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	updated, err := scanRule(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "cluster rule", rule.ID)
	}
	return updated, nil
}

// Delete removes a rule permanently.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "cluster rule", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cluster rule %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanRule(row pgx.Row) (*domain.ClusterRule, error) {
	var rule domain.ClusterRule
	err := row.Scan(&rule.ID, &rule.Name, &rule.Keywords, &rule.Priority)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}
