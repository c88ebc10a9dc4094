package catalog

import (
	"context"
	"errors"

	"github.com/Kokatesrushti/Testbook/internal/exam"
)

// ErrNotFound is returned for any missing catalog entity.
var ErrNotFound = errors.New("not found")

// Store is the catalog port. One concrete adapter is chosen at process start;
// there is no runtime switching between backends.
type Store interface {
	GetExamCategories(ctx context.Context) ([]ExamCategory, error)
	GetExamCategory(ctx context.Context, id string) (ExamCategory, error)
	GetExamCategoryBySlug(ctx context.Context, slug string) (ExamCategory, error)

	GetCourses(ctx context.Context) ([]Course, error)
	GetCourse(ctx context.Context, id string) (Course, error)
	GetCoursesByCategory(ctx context.Context, categoryID string) ([]Course, error)

	GetTestSeries(ctx context.Context) ([]TestSeries, error)
	GetTestSeriesByCategory(ctx context.Context, categoryID string) ([]TestSeries, error)

	GetMockTests(ctx context.Context) ([]MockTest, error)
	GetMockTest(ctx context.Context, id string) (MockTest, error)
	GetMockTestsBySeries(ctx context.Context, seriesID string) ([]MockTest, error)

	// GetQuestions returns the ordered question set for a test, including
	// answer keys. Callers serving test takers strip the keys first.
	GetQuestions(ctx context.Context, testID string) ([]Question, error)

	GetStudyMaterials(ctx context.Context) ([]StudyMaterial, error)
	GetStudyMaterialsByCategory(ctx context.Context, categoryID string) ([]StudyMaterial, error)
}

// Writer is the seeding/authoring side of the port.
type Writer interface {
	PutExamCategory(ctx context.Context, c ExamCategory) error
	PutCourse(ctx context.Context, c Course) error
	PutTestSeries(ctx context.Context, t TestSeries) error
	PutMockTest(ctx context.Context, t MockTest) error
	PutQuestion(ctx context.Context, q Question) error
	PutStudyMaterial(ctx context.Context, m StudyMaterial) error
}

// GradingQuestions adapts stored questions to the grading engine's shape.
func GradingQuestions(qs []Question) []exam.Question {
	out := make([]exam.Question, len(qs))
	for i, q := range qs {
		out[i] = exam.Question{
			Text:          q.Text,
			Options:       q.Options,
			Marks:         q.Marks,
			NegativeMarks: q.NegativeMarks,
			Correct:       q.Correct,
			Explanation:   q.Explanation,
			Subject:       q.Subject,
			Difficulty:    q.Difficulty,
		}
	}
	return out
}
