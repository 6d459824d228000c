package entry

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/qiwenzhou/mytime-backend/internal/adapter/postgres"
	"github.com/qiwenzhou/mytime-backend/internal/domain"
)

func columnList() string {
	return strings.Join(columns, ", ")
}

func scanEntry(row pgx.Row) (*domain.TimeEntry, error) {
	var e domain.TimeEntry
	err := row.Scan(
		&e.ID, &e.Activity, &e.GoalID, &e.CategoryID,
		&e.StartTime, &e.EndTime, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func mapError(err error, id uuid.UUID) error {
	return postgres.MapError(err, "entry", id)
}
