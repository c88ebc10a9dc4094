package catalog

// ExamCategory groups courses, test series and study materials under one exam
// vertical (banking, SSC, JEE, ...).
type ExamCategory struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Slug         string `json:"slug"`
	Icon         string `json:"icon"`
	TotalTests   int    `json:"totalTests"`
	TotalCourses int    `json:"totalCourses"`
}

type Course struct {
	ID              string   `json:"id"`
	CategoryID      string   `json:"categoryId"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Instructor      string   `json:"instructor"`
	Price           float64  `json:"price"`
	DiscountedPrice *float64 `json:"discountedPrice,omitempty"`
	DurationMin     int      `json:"duration"`
	TotalLessons    int      `json:"totalLessons"`
	TotalQuizzes    int      `json:"totalQuizzes"`
	Level           string   `json:"level"`
	Thumbnail       string   `json:"thumbnail"`
	Rating          float64  `json:"rating"`
	Enrollments     int      `json:"enrollments"`
}

type TestSeries struct {
	ID              string   `json:"id"`
	CategoryID      string   `json:"categoryId"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	DiscountedPrice *float64 `json:"discountedPrice,omitempty"`
	TotalTests      int      `json:"totalTests"`
	ValidityDays    int      `json:"validityDays"`
	Thumbnail       string   `json:"thumbnail"`
	Rating          float64  `json:"rating"`
	Purchases       int      `json:"purchases"`
}

type MockTest struct {
	ID                string  `json:"id"`
	SeriesID          string  `json:"seriesId"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	DurationMin       int     `json:"duration"`
	TotalQuestions    int     `json:"totalQuestions"`
	MaxMarks          float64 `json:"maxMarks"`
	PassingPercentage int     `json:"passingPercentage"`
	Difficulty        string  `json:"difficulty"`
	Attempts          int     `json:"attempts"`
}

// Question is the stored form; position is the 0-based ordinal within the
// test and question order is fixed once the test is published.
type Question struct {
	ID            string   `json:"id"`
	TestID        string   `json:"testId"`
	Position      int      `json:"position"`
	Text          string   `json:"questionText"`
	Options       []string `json:"options"`
	Correct       int      `json:"correctOption"`
	Explanation   string   `json:"explanation"`
	Marks         float64  `json:"marks"`
	NegativeMarks float64  `json:"negativeMarks"`
	Subject       string   `json:"subject"`
	Difficulty    string   `json:"difficulty"`
}

type StudyMaterial struct {
	ID          string `json:"id"`
	CategoryID  string `json:"categoryId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	FileURL     string `json:"fileUrl"`
	FileType    string `json:"fileType"`
	Pages       *int   `json:"pages,omitempty"`
	Thumbnail   string `json:"thumbnail"`
	Downloads   int    `json:"downloads"`
}
