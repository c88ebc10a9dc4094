package exam

import (
	"errors"
	"testing"
)

func opt(i int) *int { return &i }

func threeQuestions() []Question {
	return []Question{
		{Text: "q0", Options: []string{"a", "b"}, Marks: 2, NegativeMarks: 0.5, Correct: 1},
		{Text: "q1", Options: []string{"a", "b"}, Marks: 2, NegativeMarks: 0.5, Correct: 1},
		{Text: "q2", Options: []string{"a", "b", "c"}, Marks: 2, NegativeMarks: 0.5, Correct: 2},
	}
}

func TestGradeNegativeMarking(t *testing.T) {
	res, err := Grade(threeQuestions(), AnswerVector{opt(1), opt(0), nil})
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if res.Score != 1.5 {
		t.Errorf("score = %v, want 1.5", res.Score)
	}
	if res.TotalMarks != 6 {
		t.Errorf("totalMarks = %v, want 6", res.TotalMarks)
	}
	if res.Percentage != 25 {
		t.Errorf("percentage = %d, want 25", res.Percentage)
	}
	want := []int{1, 1, 2}
	for i, c := range res.CorrectAnswers {
		if c != want[i] {
			t.Errorf("correctAnswers[%d] = %d, want %d", i, c, want[i])
		}
	}
}

func TestGradeAllUnattempted(t *testing.T) {
	res, err := Grade(threeQuestions(), AnswerVector{nil, nil, nil})
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if res.Score != 0 {
		t.Errorf("score = %v, want 0", res.Score)
	}
	if res.Percentage != 0 {
		t.Errorf("percentage = %d, want 0", res.Percentage)
	}
}

func TestGradeScoreMayGoNegative(t *testing.T) {
	res, err := Grade(threeQuestions(), AnswerVector{opt(0), opt(0), opt(0)})
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if res.Score != -1.5 {
		t.Errorf("score = %v, want -1.5", res.Score)
	}
	if res.Percentage != -25 {
		t.Errorf("percentage = %d, want -25", res.Percentage)
	}
}

func TestGradeLengthMismatch(t *testing.T) {
	for _, answers := range []AnswerVector{
		{},
		{opt(0)},
		{opt(0), opt(1), opt(2), opt(0)},
	} {
		if _, err := Grade(threeQuestions(), answers); !errors.Is(err, ErrAnswerCountMismatch) {
			t.Errorf("len %d: err = %v, want ErrAnswerCountMismatch", len(answers), err)
		}
	}
}

func TestGradeEmptyQuestionSet(t *testing.T) {
	res, err := Grade(nil, AnswerVector{})
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if res.Score != 0 || res.Percentage != 0 {
		t.Errorf("got score=%v pct=%d, want zeros", res.Score, res.Percentage)
	}
}

func TestRoundHalfUp(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{25.0, 25},
		{24.5, 25},
		{24.4, 24},
		{-0.5, 0},
		{-0.6, -1},
		{-25.5, -25},
	}
	for _, c := range cases {
		if got := roundHalfUp(c.in); got != c.want {
			t.Errorf("roundHalfUp(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}
