package progress

import (
	"context"
	"time"
)

const (
	ItemTypeCourse = "course"
	ItemTypeTest   = "test"
)

// Record tracks one user's progress on one catalog item. There is exactly one
// record per (user, item, type); later interactions update it in place.
type Record struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	ItemID      string     `json:"itemId"`
	ItemType    string     `json:"itemType"`
	Progress    int        `json:"progress"` // percentage
	Score       *float64   `json:"score,omitempty"`
	Completed   bool       `json:"completed"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Upsert input; zero-valued optional fields leave the stored values alone on
// update where noted in the adapter.
type UpsertInput struct {
	UserID      string   `json:"userId"`
	ItemID      string   `json:"itemId"`
	ItemType    string   `json:"itemType"`
	Progress    int      `json:"progress"`
	Score       *float64 `json:"score,omitempty"`
	Completed   bool     `json:"completed"`
	CompletedAt *time.Time
}

// Store is the progress port. Upsert must be atomic per (user, item, type):
// concurrent retries from the same user may never create duplicate records.
type Store interface {
	Upsert(ctx context.Context, in UpsertInput) (Record, error)
	ListByUser(ctx context.Context, userID string) ([]Record, error)
}
