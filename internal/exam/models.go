package exam

// Question is the authoritative per-question record used for grading. The
// Correct index and marking values never travel on the public read path;
// handlers strip them before serving question sets to test takers.
type Question struct {
	Text          string   `json:"questionText"`
	Options       []string `json:"options"`
	Marks         float64  `json:"marks"`
	NegativeMarks float64  `json:"negativeMarks"`
	Correct       int      `json:"correctOption"`
	Explanation   string   `json:"explanation,omitempty"`
	Subject       string   `json:"subject,omitempty"`
	Difficulty    string   `json:"difficulty,omitempty"`
}

// AnswerVector is one selected option index per question, in question order.
// nil means unattempted.
type AnswerVector []*int

// Result is what grading produces for one attempt.
type Result struct {
	Score          float64 `json:"score"`
	TotalMarks     float64 `json:"totalMarks"`
	Percentage     int     `json:"percentage"`
	CorrectAnswers []int   `json:"correctAnswers"`
}
