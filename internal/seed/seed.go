// Package seed loads the sample catalog used by development and demo
// deployments. Running it against an already-seeded database is a no-op.
package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Kokatesrushti/Testbook/internal/auth"
	"github.com/Kokatesrushti/Testbook/internal/catalog"
)

func Run(ctx context.Context, db *sql.DB, w catalog.Writer) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exam_categories`).Scan(&n); err != nil {
		return fmt.Errorf("check seed state: %w", err)
	}
	if n > 0 {
		return nil
	}

	hash, err := auth.HashPassword("password123")
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO users (id,username,email,password_hash,name,role) VALUES ($1,'admin','admin@testbook.com',$2,'Admin User','admin')
		 ON CONFLICT (username) DO NOTHING`,
		uuid.NewString(), hash); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	categories := []catalog.ExamCategory{
		{ID: "cat-banking", Name: "Banking & Insurance", Slug: "banking-insurance", Icon: "bank",
			Description: "Prepare for banking and insurance exams like SBI PO, IBPS, RBI, LIC and more",
			TotalTests:  150, TotalCourses: 25},
		{ID: "cat-ssc", Name: "SSC & Railways", Slug: "ssc-railways", Icon: "train",
			Description: "Prepare for government exams like SSC CGL, CHSL, Railways and more",
			TotalTests:  200, TotalCourses: 30},
		{ID: "cat-jee-neet", Name: "JEE & NEET", Slug: "jee-neet", Icon: "graduation-cap",
			Description: "Prepare for engineering and medical entrance exams",
			TotalTests:  120, TotalCourses: 20},
	}
	for _, c := range categories {
		if err := w.PutExamCategory(ctx, c); err != nil {
			return fmt.Errorf("seed category %s: %w", c.ID, err)
		}
	}

	courses := []catalog.Course{
		{ID: "course-banking", CategoryID: "cat-banking", Title: "Complete Banking & Finance Course",
			Description: "Comprehensive preparation for all banking exams with 500+ practice questions",
			Instructor:  "Rahul Sharma", Price: 3999, DiscountedPrice: f(2999), DurationMin: 4800,
			TotalLessons: 120, TotalQuizzes: 30, Level: "Intermediate",
			Thumbnail: "https://images.unsplash.com/photo-1601597111158-2fceff292cdc",
			Rating:    4.8, Enrollments: 2450},
		{ID: "course-ssc-cgl", CategoryID: "cat-ssc", Title: "SSC CGL Complete Preparation",
			Description: "Master the SSC CGL exam with our comprehensive course and practice tests",
			Instructor:  "Priya Singh", Price: 4999, DiscountedPrice: f(3499), DurationMin: 6000,
			TotalLessons: 150, TotalQuizzes: 40, Level: "Advanced",
			Thumbnail: "https://images.unsplash.com/photo-1434030216411-0b793f4b4173",
			Rating:    4.9, Enrollments: 3200},
		{ID: "course-jee-physics", CategoryID: "cat-jee-neet", Title: "JEE Mains & Advanced Physics",
			Description: "Master the Physics concepts for JEE Mains and Advanced with our expert faculty",
			Instructor:  "Dr. Amit Kumar", Price: 5999, DiscountedPrice: f(4499), DurationMin: 7200,
			TotalLessons: 180, TotalQuizzes: 45, Level: "Advanced",
			Thumbnail: "https://images.unsplash.com/photo-1635070041078-e363dbe005cb",
			Rating:    4.7, Enrollments: 1850},
	}
	for _, c := range courses {
		if err := w.PutCourse(ctx, c); err != nil {
			return fmt.Errorf("seed course %s: %w", c.ID, err)
		}
	}

	series := []catalog.TestSeries{
		{ID: "series-sbi-po", CategoryID: "cat-banking", Title: "SBI PO Test Series 2025",
			Description: "Full-length mocks and sectional tests for SBI PO Prelims and Mains",
			Price:       1499, DiscountedPrice: f(999), TotalTests: 40, ValidityDays: 365,
			Thumbnail: "https://images.unsplash.com/photo-1554224155-8d04cb21cd6c",
			Rating:    4.6, Purchases: 5400},
		{ID: "series-ssc-cgl", CategoryID: "cat-ssc", Title: "SSC CGL Tier I Test Series",
			Description: "Latest-pattern mocks with detailed solutions for SSC CGL Tier I",
			Price:       1299, DiscountedPrice: f(899), TotalTests: 30, ValidityDays: 365,
			Thumbnail: "https://images.unsplash.com/photo-1513258496099-48168024aec0",
			Rating:    4.5, Purchases: 7100},
	}
	for _, t := range series {
		if err := w.PutTestSeries(ctx, t); err != nil {
			return fmt.Errorf("seed series %s: %w", t.ID, err)
		}
	}

	tests := []catalog.MockTest{
		{ID: "mock-sbi-po-1", SeriesID: "series-sbi-po", Title: "SBI PO Prelims Mock 1",
			Description: "Full-length prelims mock on the latest pattern",
			DurationMin: 60, TotalQuestions: 5, MaxMarks: 10, PassingPercentage: 50,
			Difficulty: "Moderate"},
		{ID: "mock-ssc-cgl-1", SeriesID: "series-ssc-cgl", Title: "SSC CGL Tier I Mock 1",
			Description: "Tier I general awareness and quantitative aptitude mock",
			DurationMin: 45, TotalQuestions: 3, MaxMarks: 6, PassingPercentage: 40,
			Difficulty: "Easy"},
	}
	for _, t := range tests {
		if err := w.PutMockTest(ctx, t); err != nil {
			return fmt.Errorf("seed test %s: %w", t.ID, err)
		}
	}

	questions := []catalog.Question{
		{ID: "q-sbi-1-0", TestID: "mock-sbi-po-1", Position: 0,
			Text:    "If the ratio of two numbers is 3:5 and their sum is 64, what is the larger number?",
			Options: []string{"24", "32", "40", "48"}, Correct: 2,
			Explanation: "3x + 5x = 64, so x = 8 and the larger number is 5x = 40.",
			Marks:       2, NegativeMarks: 0.5, Subject: "Quantitative Aptitude", Difficulty: "Easy"},
		{ID: "q-sbi-1-1", TestID: "mock-sbi-po-1", Position: 1,
			Text:    "Which organisation publishes the Financial Stability Report in India?",
			Options: []string{"SEBI", "RBI", "NITI Aayog", "Ministry of Finance"}, Correct: 1,
			Explanation: "The Reserve Bank of India publishes the Financial Stability Report twice a year.",
			Marks:       2, NegativeMarks: 0.5, Subject: "General Awareness", Difficulty: "Moderate"},
		{ID: "q-sbi-1-2", TestID: "mock-sbi-po-1", Position: 2,
			Text:    "A train 180 m long crosses a pole in 9 seconds. What is its speed in km/h?",
			Options: []string{"60", "66", "72", "80"}, Correct: 2,
			Explanation: "180/9 = 20 m/s = 72 km/h.",
			Marks:       2, NegativeMarks: 0.5, Subject: "Quantitative Aptitude", Difficulty: "Easy"},
		{ID: "q-sbi-1-3", TestID: "mock-sbi-po-1", Position: 3,
			Text:    "Choose the word most nearly opposite in meaning to FRUGAL.",
			Options: []string{"Thrifty", "Extravagant", "Economical", "Prudent"}, Correct: 1,
			Explanation: "Frugal means sparing with money; extravagant is its opposite.",
			Marks:       2, NegativeMarks: 0.5, Subject: "English", Difficulty: "Easy"},
		{ID: "q-sbi-1-4", TestID: "mock-sbi-po-1", Position: 4,
			Text:    "In a certain code, TRAIN is written as USBJO. How is PLANE written?",
			Options: []string{"QMBOF", "QMBPF", "OMBPF", "QNBOF"}, Correct: 0,
			Explanation: "Each letter moves one step forward.",
			Marks:       2, NegativeMarks: 0.5, Subject: "Reasoning", Difficulty: "Easy"},
		{ID: "q-ssc-1-0", TestID: "mock-ssc-cgl-1", Position: 0,
			Text:    "Who was the first President of India?",
			Options: []string{"Dr. Rajendra Prasad", "Dr. S. Radhakrishnan", "Jawaharlal Nehru", "Sardar Patel"}, Correct: 0,
			Explanation: "Dr. Rajendra Prasad served as the first President of India.",
			Marks:       2, NegativeMarks: 0.5, Subject: "General Awareness", Difficulty: "Easy"},
		{ID: "q-ssc-1-1", TestID: "mock-ssc-cgl-1", Position: 1,
			Text:    "What is 15% of 480?",
			Options: []string{"64", "68", "72", "76"}, Correct: 2,
			Explanation: "480 * 0.15 = 72.",
			Marks:       2, NegativeMarks: 0.5, Subject: "Quantitative Aptitude", Difficulty: "Easy"},
		{ID: "q-ssc-1-2", TestID: "mock-ssc-cgl-1", Position: 2,
			Text:    "The Tropic of Cancer does NOT pass through which state?",
			Options: []string{"Gujarat", "Odisha", "Rajasthan", "Tripura"}, Correct: 1,
			Explanation: "It passes through eight states; Odisha is not one of them.",
			Marks:       2, NegativeMarks: 0.5, Subject: "Geography", Difficulty: "Moderate"},
	}
	for _, q := range questions {
		if err := w.PutQuestion(ctx, q); err != nil {
			return fmt.Errorf("seed question %s: %w", q.ID, err)
		}
	}

	materials := []catalog.StudyMaterial{
		{ID: "mat-banking-formulas", CategoryID: "cat-banking", Title: "Banking Awareness Capsule",
			Description: "Monthly digest of banking and economy current affairs",
			FileURL:     "/materials/banking-awareness.pdf", FileType: "pdf", Pages: i(48),
			Thumbnail: "https://images.unsplash.com/photo-1554224154-26032ffc0d07", Downloads: 12400},
		{ID: "mat-ssc-maths", CategoryID: "cat-ssc", Title: "SSC Maths Formula Handbook",
			Description: "All formulas and shortcuts for SSC quantitative aptitude",
			FileURL:     "/materials/ssc-maths-handbook.pdf", FileType: "pdf", Pages: i(96),
			Thumbnail: "https://images.unsplash.com/photo-1509228468518-180dd4864904", Downloads: 20350},
	}
	for _, m := range materials {
		if err := w.PutStudyMaterial(ctx, m); err != nil {
			return fmt.Errorf("seed material %s: %w", m.ID, err)
		}
	}

	return nil
}

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }
