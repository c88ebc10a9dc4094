package exam

import (
	"context"
	"fmt"
)

// QuestionSource is the privileged read path: full questions including
// correct options and marking values. Handlers serving test takers must not
// use it directly.
type QuestionSource interface {
	QuestionsForGrading(ctx context.Context, testID string) ([]Question, error)
}

// ProgressRecorder persists attempt completion. CompleteTest must be an
// atomic upsert keyed by (user, test): retries and double submits update the
// one existing record rather than appending history.
type ProgressRecorder interface {
	CompleteTest(ctx context.Context, userID, testID string, score float64) error
}

// Service is the trusted-tier scoring engine: it grades a submitted answer
// vector against the authoritative question set and records completion.
type Service struct {
	questions QuestionSource
	progress  ProgressRecorder
}

func NewService(questions QuestionSource, progress ProgressRecorder) *Service {
	return &Service{questions: questions, progress: progress}
}

// Submit grades one attempt. Authentication and entitlement checks happen
// before this is called; userID is the verified caller.
func (s *Service) Submit(ctx context.Context, userID, testID string, answers AnswerVector) (Result, error) {
	questions, err := s.questions.QuestionsForGrading(ctx, testID)
	if err != nil {
		return Result{}, err
	}

	res, err := Grade(questions, answers)
	if err != nil {
		return Result{}, err
	}

	if err := s.progress.CompleteTest(ctx, userID, testID, float64(res.Percentage)); err != nil {
		return Result{}, fmt.Errorf("record progress: %w", err)
	}
	return res, nil
}
