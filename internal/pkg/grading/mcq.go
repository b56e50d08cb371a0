// Package grading holds the deterministic scoring primitives used when
// a weekly task submission is graded.
package grading

import "github.com/campus2corporate/portal/internal/app/models"

// ScoreMCQ compares submitted answers against the task's questions by
// position and returns the number of correct answers. A missing or
// out-of-range answer simply counts as incorrect; the function never
// fails regardless of input shape.
func ScoreMCQ(answers []int, questions []models.MCQQuestion) int {
	score := 0
	for i, q := range questions {
		if i >= len(answers) {
			break
		}
		if answers[i] == q.CorrectAnswer {
			score++
		}
	}
	return score
}

// RoundCodingScore collapses the per-question 0..1 coding credits into
// the integer coding score recorded on the submission.
func RoundCodingScore(sum float64) int {
	if sum < 0 {
		return 0
	}
	return int(sum + 0.5)
}
