package progress

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Upsert relies on the UNIQUE(user_id,item_id,item_type) constraint and ON
// CONFLICT DO UPDATE, so concurrent submits for the same (user, test) resolve
// to a single row without application-level locking.
func (s *SQLStore) Upsert(ctx context.Context, in UpsertInput) (Record, error) {
	now := time.Now()
	var completedAt sql.NullInt64
	if in.CompletedAt != nil {
		completedAt.Valid = true
		completedAt.Int64 = in.CompletedAt.Unix()
	}
	var score sql.NullFloat64
	if in.Score != nil {
		score.Valid = true
		score.Float64 = *in.Score
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_progress (id,user_id,item_id,item_type,progress,score,completed,started_at,completed_at,updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 ON CONFLICT (user_id,item_id,item_type) DO UPDATE SET
		   progress=EXCLUDED.progress,
		   score=EXCLUDED.score,
		   completed=EXCLUDED.completed,
		   completed_at=EXCLUDED.completed_at,
		   updated_at=EXCLUDED.updated_at`,
		uuid.NewString(), in.UserID, in.ItemID, in.ItemType, in.Progress, score, in.Completed,
		now.Unix(), completedAt, now.Unix())
	if err != nil {
		return Record{}, err
	}
	return s.get(ctx, in.UserID, in.ItemID, in.ItemType)
}

func (s *SQLStore) get(ctx context.Context, userID, itemID, itemType string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,user_id,item_id,item_type,progress,score,completed,started_at,completed_at,updated_at
		 FROM user_progress WHERE user_id=$1 AND item_id=$2 AND item_type=$3`,
		userID, itemID, itemType)
	return scanRecord(row.Scan)
}

func (s *SQLStore) ListByUser(ctx context.Context, userID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,user_id,item_id,item_type,progress,score,completed,started_at,completed_at,updated_at
		 FROM user_progress WHERE user_id=$1 ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Record{}
	for rows.Next() {
		r, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanRecord(scan func(dest ...any) error) (Record, error) {
	var r Record
	var score sql.NullFloat64
	var startedAt int64
	var completedAt sql.NullInt64
	var updatedAt int64
	if err := scan(&r.ID, &r.UserID, &r.ItemID, &r.ItemType, &r.Progress, &score, &r.Completed,
		&startedAt, &completedAt, &updatedAt); err != nil {
		return Record{}, err
	}
	if score.Valid {
		v := score.Float64
		r.Score = &v
	}
	r.StartedAt = time.Unix(startedAt, 0).UTC()
	if completedAt.Valid {
		t := time.Unix(completedAt.Int64, 0).UTC()
		r.CompletedAt = &t
	}
	r.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return r, nil
}

// CompleteTest satisfies exam.ProgressRecorder: mark the test finished with
// the graded percentage as the stored score.
func (s *SQLStore) CompleteTest(ctx context.Context, userID, testID string, score float64) error {
	now := time.Now()
	_, err := s.Upsert(ctx, UpsertInput{
		UserID:      userID,
		ItemID:      testID,
		ItemType:    ItemTypeTest,
		Progress:    100,
		Score:       &score,
		Completed:   true,
		CompletedAt: &now,
	})
	return err
}
