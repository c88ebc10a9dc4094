package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/Kokatesrushti/Testbook/internal/exam"
)

// SQLStore implements Store and Writer over database/sql. The same SQL works
// on both supported drivers.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) GetExamCategories(ctx context.Context) ([]ExamCategory, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,name,description,slug,icon,total_tests,total_courses FROM exam_categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ExamCategory{}
	for rows.Next() {
		var c ExamCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Slug, &c.Icon, &c.TotalTests, &c.TotalCourses); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetExamCategory(ctx context.Context, id string) (ExamCategory, error) {
	return s.scanCategory(s.db.QueryRowContext(ctx,
		`SELECT id,name,description,slug,icon,total_tests,total_courses FROM exam_categories WHERE id=$1`, id))
}

func (s *SQLStore) GetExamCategoryBySlug(ctx context.Context, slug string) (ExamCategory, error) {
	return s.scanCategory(s.db.QueryRowContext(ctx,
		`SELECT id,name,description,slug,icon,total_tests,total_courses FROM exam_categories WHERE slug=$1`, slug))
}

func (s *SQLStore) scanCategory(row *sql.Row) (ExamCategory, error) {
	var c ExamCategory
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Slug, &c.Icon, &c.TotalTests, &c.TotalCourses)
	if errors.Is(err, sql.ErrNoRows) {
		return ExamCategory{}, ErrNotFound
	}
	return c, err
}

const courseCols = `id,category_id,title,description,instructor,price,discounted_price,duration_min,
	total_lessons,total_quizzes,level,thumbnail,rating,enrollments`

func (s *SQLStore) GetCourses(ctx context.Context) ([]Course, error) {
	return s.queryCourses(ctx, `SELECT `+courseCols+` FROM courses ORDER BY title`)
}

func (s *SQLStore) GetCoursesByCategory(ctx context.Context, categoryID string) ([]Course, error) {
	return s.queryCourses(ctx, `SELECT `+courseCols+` FROM courses WHERE category_id=$1 ORDER BY title`, categoryID)
}

func (s *SQLStore) GetCourse(ctx context.Context, id string) (Course, error) {
	cs, err := s.queryCourses(ctx, `SELECT `+courseCols+` FROM courses WHERE id=$1`, id)
	if err != nil {
		return Course{}, err
	}
	if len(cs) == 0 {
		return Course{}, ErrNotFound
	}
	return cs[0], nil
}

func (s *SQLStore) queryCourses(ctx context.Context, q string, args ...any) ([]Course, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Course{}
	for rows.Next() {
		var c Course
		var disc sql.NullFloat64
		if err := rows.Scan(&c.ID, &c.CategoryID, &c.Title, &c.Description, &c.Instructor, &c.Price, &disc,
			&c.DurationMin, &c.TotalLessons, &c.TotalQuizzes, &c.Level, &c.Thumbnail, &c.Rating, &c.Enrollments); err != nil {
			return nil, err
		}
		if disc.Valid {
			v := disc.Float64
			c.DiscountedPrice = &v
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const seriesCols = `id,category_id,title,description,price,discounted_price,total_tests,validity_days,
	thumbnail,rating,purchases`

func (s *SQLStore) GetTestSeries(ctx context.Context) ([]TestSeries, error) {
	return s.querySeries(ctx, `SELECT `+seriesCols+` FROM test_series ORDER BY title`)
}

func (s *SQLStore) GetTestSeriesByCategory(ctx context.Context, categoryID string) ([]TestSeries, error) {
	return s.querySeries(ctx, `SELECT `+seriesCols+` FROM test_series WHERE category_id=$1 ORDER BY title`, categoryID)
}

func (s *SQLStore) querySeries(ctx context.Context, q string, args ...any) ([]TestSeries, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []TestSeries{}
	for rows.Next() {
		var t TestSeries
		var disc sql.NullFloat64
		if err := rows.Scan(&t.ID, &t.CategoryID, &t.Title, &t.Description, &t.Price, &disc,
			&t.TotalTests, &t.ValidityDays, &t.Thumbnail, &t.Rating, &t.Purchases); err != nil {
			return nil, err
		}
		if disc.Valid {
			v := disc.Float64
			t.DiscountedPrice = &v
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

const mockTestCols = `id,series_id,title,description,duration_min,total_questions,max_marks,
	passing_percentage,difficulty,attempts`

func (s *SQLStore) GetMockTests(ctx context.Context) ([]MockTest, error) {
	return s.queryMockTests(ctx, `SELECT `+mockTestCols+` FROM mock_tests ORDER BY title`)
}

func (s *SQLStore) GetMockTestsBySeries(ctx context.Context, seriesID string) ([]MockTest, error) {
	return s.queryMockTests(ctx, `SELECT `+mockTestCols+` FROM mock_tests WHERE series_id=$1 ORDER BY title`, seriesID)
}

func (s *SQLStore) GetMockTest(ctx context.Context, id string) (MockTest, error) {
	ts, err := s.queryMockTests(ctx, `SELECT `+mockTestCols+` FROM mock_tests WHERE id=$1`, id)
	if err != nil {
		return MockTest{}, err
	}
	if len(ts) == 0 {
		return MockTest{}, ErrNotFound
	}
	return ts[0], nil
}

func (s *SQLStore) queryMockTests(ctx context.Context, q string, args ...any) ([]MockTest, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []MockTest{}
	for rows.Next() {
		var t MockTest
		if err := rows.Scan(&t.ID, &t.SeriesID, &t.Title, &t.Description, &t.DurationMin, &t.TotalQuestions,
			&t.MaxMarks, &t.PassingPercentage, &t.Difficulty, &t.Attempts); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetQuestions returns the full question set in position order, answer keys
// included. A test with no questions is distinguished from a missing test.
func (s *SQLStore) GetQuestions(ctx context.Context, testID string) ([]Question, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT 1 FROM mock_tests WHERE id=$1`, testID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id,test_id,position,question_text,options_json,correct_option,explanation,marks,negative_marks,subject,difficulty
		 FROM questions WHERE test_id=$1 ORDER BY position`, testID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Question{}
	for rows.Next() {
		var q Question
		var optionsJSON string
		if err := rows.Scan(&q.ID, &q.TestID, &q.Position, &q.Text, &optionsJSON, &q.Correct,
			&q.Explanation, &q.Marks, &q.NegativeMarks, &q.Subject, &q.Difficulty); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(optionsJSON), &q.Options); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// QuestionsForGrading is the privileged read used by the scoring engine.
func (s *SQLStore) QuestionsForGrading(ctx context.Context, testID string) ([]exam.Question, error) {
	qs, err := s.GetQuestions(ctx, testID)
	if err != nil {
		return nil, err
	}
	return GradingQuestions(qs), nil
}

const materialCols = `id,category_id,title,description,file_url,file_type,pages,thumbnail,downloads`

func (s *SQLStore) GetStudyMaterials(ctx context.Context) ([]StudyMaterial, error) {
	return s.queryMaterials(ctx, `SELECT `+materialCols+` FROM study_materials ORDER BY title`)
}

func (s *SQLStore) GetStudyMaterialsByCategory(ctx context.Context, categoryID string) ([]StudyMaterial, error) {
	return s.queryMaterials(ctx, `SELECT `+materialCols+` FROM study_materials WHERE category_id=$1 ORDER BY title`, categoryID)
}

func (s *SQLStore) queryMaterials(ctx context.Context, q string, args ...any) ([]StudyMaterial, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []StudyMaterial{}
	for rows.Next() {
		var m StudyMaterial
		var pages sql.NullInt64
		if err := rows.Scan(&m.ID, &m.CategoryID, &m.Title, &m.Description, &m.FileURL, &m.FileType,
			&pages, &m.Thumbnail, &m.Downloads); err != nil {
			return nil, err
		}
		if pages.Valid {
			v := int(pages.Int64)
			m.Pages = &v
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ---- Writer (seeding) ----

func (s *SQLStore) PutExamCategory(ctx context.Context, c ExamCategory) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exam_categories (id,name,description,slug,icon,total_tests,total_courses)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, description=EXCLUDED.description,
		   slug=EXCLUDED.slug, icon=EXCLUDED.icon, total_tests=EXCLUDED.total_tests,
		   total_courses=EXCLUDED.total_courses`,
		c.ID, c.Name, c.Description, c.Slug, c.Icon, c.TotalTests, c.TotalCourses)
	return err
}

func (s *SQLStore) PutCourse(ctx context.Context, c Course) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO courses (id,category_id,title,description,instructor,price,discounted_price,duration_min,
		   total_lessons,total_quizzes,level,thumbnail,rating,enrollments)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		 ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, description=EXCLUDED.description`,
		c.ID, c.CategoryID, c.Title, c.Description, c.Instructor, c.Price, nullable(c.DiscountedPrice),
		c.DurationMin, c.TotalLessons, c.TotalQuizzes, c.Level, c.Thumbnail, c.Rating, c.Enrollments)
	return err
}

func (s *SQLStore) PutTestSeries(ctx context.Context, t TestSeries) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO test_series (id,category_id,title,description,price,discounted_price,total_tests,
		   validity_days,thumbnail,rating,purchases)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, description=EXCLUDED.description`,
		t.ID, t.CategoryID, t.Title, t.Description, t.Price, nullable(t.DiscountedPrice),
		t.TotalTests, t.ValidityDays, t.Thumbnail, t.Rating, t.Purchases)
	return err
}

func (s *SQLStore) PutMockTest(ctx context.Context, t MockTest) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO mock_tests (id,series_id,title,description,duration_min,total_questions,max_marks,
		   passing_percentage,difficulty,attempts)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, description=EXCLUDED.description,
		   duration_min=EXCLUDED.duration_min, total_questions=EXCLUDED.total_questions`,
		t.ID, t.SeriesID, t.Title, t.Description, t.DurationMin, t.TotalQuestions, t.MaxMarks,
		t.PassingPercentage, t.Difficulty, t.Attempts)
	return err
}

func (s *SQLStore) PutQuestion(ctx context.Context, q Question) error {
	opts, err := json.Marshal(q.Options)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO questions (id,test_id,position,question_text,options_json,correct_option,explanation,
		   marks,negative_marks,subject,difficulty)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 ON CONFLICT (id) DO UPDATE SET question_text=EXCLUDED.question_text, options_json=EXCLUDED.options_json,
		   correct_option=EXCLUDED.correct_option, marks=EXCLUDED.marks, negative_marks=EXCLUDED.negative_marks`,
		q.ID, q.TestID, q.Position, q.Text, string(opts), q.Correct, q.Explanation,
		q.Marks, q.NegativeMarks, q.Subject, q.Difficulty)
	return err
}

func (s *SQLStore) PutStudyMaterial(ctx context.Context, m StudyMaterial) error {
	var pages sql.NullInt64
	if m.Pages != nil {
		pages.Valid = true
		pages.Int64 = int64(*m.Pages)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO study_materials (id,category_id,title,description,file_url,file_type,pages,thumbnail,downloads)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, description=EXCLUDED.description`,
		m.ID, m.CategoryID, m.Title, m.Description, m.FileURL, m.FileType, pages, m.Thumbnail, m.Downloads)
	return err
}

func nullable(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Valid: true, Float64: *p}
}
