package domain

import (
	"time"

	"github.com/google/uuid"
)

// Goal is a user-declared intention for a specific day ("写论文", "gym").
// Goals are free text; clustering groups goals that express the same intent.
type Goal struct {
	ID        uuid.UUID
	Name      string
	Date      time.Time // calendar day, time part is always midnight
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// IsDeleted returns true if the goal has been soft-deleted.
func (g *Goal) IsDeleted() bool {
	return g.DeletedAt != nil
}

// Category is a user-defined activity category. Display color is resolved by
// the config layer, not stored here.
type Category struct {
	ID    uuid.UUID
	Name  string
	Order int
}
