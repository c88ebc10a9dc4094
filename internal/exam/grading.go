package exam

import (
	"errors"
	"math"
)

// ErrAnswerCountMismatch means the submitted vector does not line up with the
// question set. This is a client contract violation; answers are never
// truncated or padded to fit.
var ErrAnswerCountMismatch = errors.New("answer count does not match question count")

// Grade scores an answer vector against a question set. A correct answer adds
// the question's marks, a wrong (non-nil) answer subtracts its negative
// marks, an unattempted question contributes nothing. The score is not
// floored at zero.
func Grade(questions []Question, answers AnswerVector) (Result, error) {
	if len(answers) != len(questions) {
		return Result{}, ErrAnswerCountMismatch
	}

	var score, totalMarks float64
	correct := make([]int, len(questions))
	for i, q := range questions {
		totalMarks += q.Marks
		correct[i] = q.Correct
		switch {
		case answers[i] == nil:
			// unattempted
		case *answers[i] == q.Correct:
			score += q.Marks
		default:
			score -= q.NegativeMarks
		}
	}

	pct := 0
	if totalMarks != 0 {
		pct = roundHalfUp(score / totalMarks * 100)
	}
	return Result{
		Score:          score,
		TotalMarks:     totalMarks,
		Percentage:     pct,
		CorrectAnswers: correct,
	}, nil
}

// roundHalfUp rounds to the nearest integer with halves going up, so a
// negative score of -0.5% rounds to 0, not -1.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
