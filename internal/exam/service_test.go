package exam_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Kokatesrushti/Testbook/internal/exam"
	"github.com/Kokatesrushti/Testbook/internal/progress"
)

type fakeQuestions struct {
	sets map[string][]exam.Question
}

var errTestNotFound = errors.New("test not found")

func (f *fakeQuestions) QuestionsForGrading(_ context.Context, testID string) ([]exam.Question, error) {
	qs, ok := f.sets[testID]
	if !ok {
		return nil, errTestNotFound
	}
	return qs, nil
}

func two(i int) *int { return &i }

func TestServiceSubmitGradesAndRecords(t *testing.T) {
	ctx := context.Background()
	qs := &fakeQuestions{sets: map[string][]exam.Question{
		"t1": {
			{Marks: 2, NegativeMarks: 0.5, Correct: 1},
			{Marks: 2, NegativeMarks: 0.5, Correct: 1},
			{Marks: 2, NegativeMarks: 0.5, Correct: 2},
		},
	}}
	store := progress.NewMemoryStore()
	svc := exam.NewService(qs, store)

	res, err := svc.Submit(ctx, "u1", "t1", exam.AnswerVector{two(1), two(0), nil})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Score != 1.5 || res.Percentage != 25 {
		t.Fatalf("result = %+v, want score 1.5 pct 25", res)
	}

	recs, err := store.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("list progress: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("progress records = %d, want 1", len(recs))
	}
	r := recs[0]
	if r.ItemID != "t1" || r.ItemType != progress.ItemTypeTest {
		t.Errorf("record keyed %s/%s, want t1/test", r.ItemID, r.ItemType)
	}
	if !r.Completed || r.Progress != 100 || r.Score == nil || *r.Score != 25 {
		t.Errorf("record = %+v, want completed with score 25", r)
	}
	if r.CompletedAt == nil {
		t.Errorf("completedAt not set")
	}
}

func TestServiceResubmitOverwritesProgress(t *testing.T) {
	ctx := context.Background()
	qs := &fakeQuestions{sets: map[string][]exam.Question{
		"t1": {{Marks: 4, Correct: 0}},
	}}
	store := progress.NewMemoryStore()
	svc := exam.NewService(qs, store)

	if _, err := svc.Submit(ctx, "u1", "t1", exam.AnswerVector{nil}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := svc.Submit(ctx, "u1", "t1", exam.AnswerVector{two(0)}); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	recs, _ := store.ListByUser(ctx, "u1")
	if len(recs) != 1 {
		t.Fatalf("progress records = %d, want 1 (retake must overwrite)", len(recs))
	}
	if recs[0].Score == nil || *recs[0].Score != 100 {
		t.Errorf("score = %v, want 100 from the retake", recs[0].Score)
	}
}

func TestServiceUnknownTest(t *testing.T) {
	svc := exam.NewService(&fakeQuestions{sets: map[string][]exam.Question{}}, progress.NewMemoryStore())
	if _, err := svc.Submit(context.Background(), "u1", "missing", exam.AnswerVector{}); !errors.Is(err, errTestNotFound) {
		t.Fatalf("err = %v, want test-not-found to propagate", err)
	}
}

func TestServiceMismatchSkipsProgress(t *testing.T) {
	ctx := context.Background()
	qs := &fakeQuestions{sets: map[string][]exam.Question{
		"t1": {{Marks: 1, Correct: 0}, {Marks: 1, Correct: 0}},
	}}
	store := progress.NewMemoryStore()
	svc := exam.NewService(qs, store)

	if _, err := svc.Submit(ctx, "u1", "t1", exam.AnswerVector{two(0)}); !errors.Is(err, exam.ErrAnswerCountMismatch) {
		t.Fatalf("err = %v, want ErrAnswerCountMismatch", err)
	}
	recs, _ := store.ListByUser(ctx, "u1")
	if len(recs) != 0 {
		t.Errorf("progress written on rejected submit: %d records", len(recs))
	}
}
