package grading

import (
	"testing"

	"github.com/campus2corporate/portal/internal/app/models"
)

func questions(correct ...int) []models.MCQQuestion {
	qs := make([]models.MCQQuestion, len(correct))
	for i, c := range correct {
		qs[i] = models.MCQQuestion{
			Question:      "q",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: c,
		}
	}
	return qs
}

func TestScoreMCQ_AllCorrect(t *testing.T) {
	got := ScoreMCQ([]int{1, 0, 3}, questions(1, 0, 3))
	if got != 3 {
		t.Errorf("expected score 3, got %d", got)
	}
}

func TestScoreMCQ_PartiallyCorrect(t *testing.T) {
	got := ScoreMCQ([]int{1, 1}, questions(1, 0))
	if got != 1 {
		t.Errorf("expected score 1, got %d", got)
	}
}

func TestScoreMCQ_EmptyAnswers(t *testing.T) {
	got := ScoreMCQ(nil, questions(0, 1, 2))
	if got != 0 {
		t.Errorf("expected score 0 for empty answers, got %d", got)
	}
}

func TestScoreMCQ_ShortAnswerList(t *testing.T) {
	// Answers beyond the provided list count as incorrect.
	got := ScoreMCQ([]int{2}, questions(2, 2, 2))
	if got != 1 {
		t.Errorf("expected score 1, got %d", got)
	}
}

func TestScoreMCQ_ExtraAnswersIgnored(t *testing.T) {
	got := ScoreMCQ([]int{0, 1, 2, 3, 0}, questions(0, 1))
	if got != 2 {
		t.Errorf("expected score 2, got %d", got)
	}
}

func TestScoreMCQ_OutOfRangeAnswer(t *testing.T) {
	got := ScoreMCQ([]int{-1, 99}, questions(0, 1))
	if got != 0 {
		t.Errorf("expected score 0 for out-of-range answers, got %d", got)
	}
}

func TestRoundCodingScore(t *testing.T) {
	cases := []struct {
		sum  float64
		want int
	}{
		{0, 0},
		{0.4, 0},
		{0.5, 1},
		{1.3, 1},
		{1.8, 2},
		{2.5, 3},
		{-0.5, 0},
	}
	for _, c := range cases {
		if got := RoundCodingScore(c.sum); got != c.want {
			t.Errorf("RoundCodingScore(%v) = %d, want %d", c.sum, got, c.want)
		}
	}
}
