package progress

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps progress records in a map keyed by (user, item, type).
// Useful for unit tests and as a degraded adapter when no database is
// available.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]Record{}}
}

func memKey(userID, itemID, itemType string) string {
	return userID + "|" + itemID + "|" + itemType
}

func (m *MemoryStore) Upsert(_ context.Context, in UpsertInput) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	k := memKey(in.UserID, in.ItemID, in.ItemType)
	r, ok := m.records[k]
	if !ok {
		r = Record{
			ID:        uuid.NewString(),
			UserID:    in.UserID,
			ItemID:    in.ItemID,
			ItemType:  in.ItemType,
			StartedAt: now,
		}
	}
	r.Progress = in.Progress
	r.Score = in.Score
	r.Completed = in.Completed
	r.CompletedAt = in.CompletedAt
	r.UpdatedAt = now
	m.records[k] = r
	return r, nil
}

func (m *MemoryStore) ListByUser(_ context.Context, userID string) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []Record{}
	for _, r := range m.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *MemoryStore) CompleteTest(ctx context.Context, userID, testID string, score float64) error {
	now := time.Now()
	_, err := m.Upsert(ctx, UpsertInput{
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
