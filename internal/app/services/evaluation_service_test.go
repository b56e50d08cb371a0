package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campus2corporate/portal/internal/app/models"
	"github.com/campus2corporate/portal/internal/pkg/apperrors"
)

func TestParseVerdict_PlainJSON(t *testing.T) {
	verdict, err := parseVerdict(`{"score": 0.9, "feedback": "solid", "passesAllTests": true, "performance": 90, "readability": 85, "correctness": 95, "identifiedIssues": []}`)
	if err != nil {
		t.Fatalf("parseVerdict failed: %v", err)
	}
	if verdict.Score != 0.9 || !verdict.PassesAllTests || verdict.Correctness != 95 {
		t.Errorf("verdict = %+v", verdict)
	}
}

func TestParseVerdict_FencedJSON(t *testing.T) {
	raw := "```json\n{\"score\": 0.7, \"feedback\": \"ok\", \"passesAllTests\": false, \"performance\": 60, \"readability\": 70, \"correctness\": 75, \"identifiedIssues\": []}\n```"
	verdict, err := parseVerdict(raw)
	if err != nil {
		t.Fatalf("parseVerdict failed: %v", err)
	}
	if verdict.Score != 0.7 || verdict.Feedback != "ok" {
		t.Errorf("verdict = %+v", verdict)
	}
}

func TestParseVerdict_ProseWrapped(t *testing.T) {
	raw := `Here is my evaluation: {"score": 1, "feedback": "perfect", "passesAllTests": true, "performance": 100, "readability": 100, "correctness": 100, "identifiedIssues": []} Hope that helps!`
	verdict, err := parseVerdict(raw)
	if err != nil {
		t.Fatalf("parseVerdict failed: %v", err)
	}
	if verdict.Score != 1 || verdict.Feedback != "perfect" {
		t.Errorf("verdict = %+v", verdict)
	}
}

func TestParseVerdict_NoJSON(t *testing.T) {
	if _, err := parseVerdict("I cannot evaluate this code."); err == nil {
		t.Fatal("expected an error for a reply without JSON")
	}
}

func TestEvaluationService_EvaluateSolutions_ClampsScore(t *testing.T) {
	j := &scriptedJudge{responses: []string{
		`{"score": 3.5, "feedback": "too generous", "passesAllTests": true, "performance": 100, "readability": 100, "correctness": 100, "identifiedIssues": []}`,
	}}
	svc := NewEvaluationService(j, time.Second, zerolog.Nop())

	questions := []models.CodingQuestion{{Question: "Reverse a string"}}
	feedback, sum := svc.EvaluateSolutions(context.Background(), questions, []string{"def rev(s): return s[::-1]"})

	if len(feedback) != 1 {
		t.Fatalf("feedback count = %d, want 1", len(feedback))
	}
	if feedback[0].Score != 1 || sum != 1 {
		t.Errorf("score = %v, sum = %v, want both clamped to 1", feedback[0].Score, sum)
	}
}

func TestEvaluationService_EvaluateSolutions_NegativeScoreFloorsAtZero(t *testing.T) {
	j := &scriptedJudge{responses: []string{
		`{"score": -0.5, "feedback": "broken", "passesAllTests": false, "performance": 10, "readability": 10, "correctness": 0, "identifiedIssues": []}`,
	}}
	svc := NewEvaluationService(j, time.Second, zerolog.Nop())

	feedback, sum := svc.EvaluateSolutions(context.Background(),
		[]models.CodingQuestion{{Question: "Reverse a string"}}, []string{"pass"})

	if feedback[0].Score != 0 || sum != 0 {
		t.Errorf("score = %v, sum = %v, want both 0", feedback[0].Score, sum)
	}
}

func TestEvaluationService_EvaluateSolutions_NilIssuesBecomesEmptySlice(t *testing.T) {
	j := &scriptedJudge{responses: []string{
		`{"score": 0.8, "feedback": "fine", "passesAllTests": true, "performance": 80, "readability": 80, "correctness": 80}`,
	}}
	svc := NewEvaluationService(j, time.Second, zerolog.Nop())

	feedback, _ := svc.EvaluateSolutions(context.Background(),
		[]models.CodingQuestion{{Question: "Reverse a string"}}, []string{"code"})

	if feedback[0].IdentifiedIssues == nil {
		t.Error("identifiedIssues must be an empty slice, not nil")
	}
}

func TestEvaluationService_EvaluateSolutions_UnparseableReplyGetsPartialCredit(t *testing.T) {
	j := &scriptedJudge{responses: []string{"Sorry, I had trouble with that one."}}
	svc := NewEvaluationService(j, time.Second, zerolog.Nop())

	feedback, sum := svc.EvaluateSolutions(context.Background(),
		[]models.CodingQuestion{{Question: "Reverse a string"}}, []string{"code"})

	if sum != partialCreditScore {
		t.Errorf("sum = %v, want %v", sum, partialCreditScore)
	}
	fb := feedback[0]
	if fb.Feedback != partialCreditMessage || fb.Performance != partialCreditMetric || fb.PassesAllTests {
		t.Errorf("partial credit feedback = %+v", fb)
	}
}

func TestEvaluationService_EvaluateSolutions_MissingSolutionSkipped(t *testing.T) {
	j := &scriptedJudge{responses: []string{
		`{"score": 1, "feedback": "good", "passesAllTests": true, "performance": 90, "readability": 90, "correctness": 90, "identifiedIssues": []}`,
	}}
	svc := NewEvaluationService(j, time.Second, zerolog.Nop())

	questions := []models.CodingQuestion{
		{Question: "Reverse a string"},
		{Question: "FizzBuzz"},
	}
	// Only the first question has a solution
	feedback, sum := svc.EvaluateSolutions(context.Background(), questions, []string{"code"})

	if len(feedback) != 1 || feedback[0].QuestionIndex != 0 {
		t.Fatalf("feedback = %+v, want one entry for question 0", feedback)
	}
	if sum != 1 {
		t.Errorf("sum = %v, want 1", sum)
	}
	if j.calls != 1 {
		t.Errorf("judge calls = %d, want 1", j.calls)
	}
}

func TestEvaluationService_EvaluateCodeAdvisory_JudgeFailure(t *testing.T) {
	j := &scriptedJudge{err: errors.New("upstream unavailable")}
	svc := NewEvaluationService(j, time.Second, zerolog.Nop())

	_, err := svc.EvaluateCodeAdvisory(context.Background(), "code", "question")
	if !errors.Is(err, apperrors.ErrEvaluationFailed) {
		t.Fatalf("expected ErrEvaluationFailed, got %v", err)
	}
}

func TestEvaluationService_EvaluateCodeAdvisory_PassesThroughFeedback(t *testing.T) {
	j := &scriptedJudge{responses: []string{"Consider using two pointers."}}
	svc := NewEvaluationService(j, time.Second, zerolog.Nop())

	feedback, err := svc.EvaluateCodeAdvisory(context.Background(), "code", "question")
	if err != nil {
		t.Fatalf("EvaluateCodeAdvisory failed: %v", err)
	}
	if feedback != "Consider using two pointers." {
		t.Errorf("feedback = %q", feedback)
	}
}
