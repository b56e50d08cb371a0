package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campus2corporate/portal/internal/app/models"
	"github.com/campus2corporate/portal/internal/pkg/apperrors"
	"github.com/campus2corporate/portal/internal/pkg/judge"
)

// Partial-credit fallback applied when the judge cannot produce a
// usable verdict. One bad judge response never fails a submission.
const (
	partialCreditScore   = 0.5
	partialCreditMetric  = 50
	partialCreditMessage = "Error during automated evaluation. Partial credit awarded."
)

// judgeVerdict is the strict JSON shape the judge is instructed to return
type judgeVerdict struct {
	Score            float64            `json:"score"`
	Feedback         string             `json:"feedback"`
	PassesAllTests   bool               `json:"passesAllTests"`
	Performance      int                `json:"performance"`
	Readability      int                `json:"readability"`
	Correctness      int                `json:"correctness"`
	IdentifiedIssues []models.CodeIssue `json:"identifiedIssues"`
}

// EvaluationService evaluates coding solutions through the injected
// judge and degrades gracefully when the judge misbehaves.
type EvaluationService struct {
	judge   judge.CodeJudge
	timeout time.Duration
	logger  zerolog.Logger
}

// NewEvaluationService creates a new EvaluationService
func NewEvaluationService(codeJudge judge.CodeJudge, timeout time.Duration, logger zerolog.Logger) *EvaluationService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &EvaluationService{
		judge:   codeJudge,
		timeout: timeout,
		logger:  logger,
	}
}

// EvaluateSolutions grades each non-empty coding solution against its
// question. Empty solutions are skipped entirely: no score contribution
// and no feedback entry. The returned sum is the raw 0..1 credit total.
func (s *EvaluationService) EvaluateSolutions(ctx context.Context, questions []models.CodingQuestion, solutions []string) ([]models.CodingFeedback, float64) {
	var feedback []models.CodingFeedback
	var sum float64

	for i, q := range questions {
		if i >= len(solutions) || strings.TrimSpace(solutions[i]) == "" {
			continue
		}

		fb := s.evaluateOne(ctx, i, q, solutions[i])
		feedback = append(feedback, fb)
		sum += fb.Score
	}

	return feedback, sum
}

// evaluateOne runs one judge call with a bounded timeout; any failure
// along the way collapses into the partial-credit verdict.
func (s *EvaluationService) evaluateOne(ctx context.Context, index int, question models.CodingQuestion, solution string) models.CodingFeedback {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.judge.Complete(callCtx, buildGradingPrompt(question, solution))
	if err != nil {
		s.logger.Warn().Err(err).Int("questionIndex", index).Msg("Judge call failed, awarding partial credit")
		return partialCreditFeedback(index)
	}

	verdict, err := parseVerdict(raw)
	if err != nil {
		s.logger.Warn().Err(err).Int("questionIndex", index).Msg("Judge response unparseable, awarding partial credit")
		return partialCreditFeedback(index)
	}

	score := verdict.Score
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	issues := verdict.IdentifiedIssues
	if issues == nil {
		issues = []models.CodeIssue{}
	}

	return models.CodingFeedback{
		QuestionIndex:    index,
		Feedback:         verdict.Feedback,
		Score:            score,
		PassesAllTests:   verdict.PassesAllTests,
		Performance:      verdict.Performance,
		Readability:      verdict.Readability,
		Correctness:      verdict.Correctness,
		IdentifiedIssues: issues,
	}
}

// EvaluateCodeAdvisory returns free-text feedback for the standalone
// evaluation surface. Unlike grading, failures here do surface.
func (s *EvaluationService) EvaluateCodeAdvisory(ctx context.Context, code, question string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"You are a programming mentor. Review the following solution to the problem below and give concise, "+
			"actionable feedback on correctness, efficiency and style.\n\nProblem:\n%s\n\nSolution:\n%s",
		question, code)

	feedback, err := s.judge.Complete(callCtx, prompt)
	if err != nil {
		s.logger.Error().Err(err).Msg("Advisory evaluation failed")
		return "", apperrors.ErrEvaluationFailed
	}

	return feedback, nil
}

// partialCreditFeedback is the fixed degraded verdict
func partialCreditFeedback(index int) models.CodingFeedback {
	return models.CodingFeedback{
		QuestionIndex:    index,
		Feedback:         partialCreditMessage,
		Score:            partialCreditScore,
		PassesAllTests:   false,
		Performance:      partialCreditMetric,
		Readability:      partialCreditMetric,
		Correctness:      partialCreditMetric,
		IdentifiedIssues: []models.CodeIssue{},
	}
}

// buildGradingPrompt embeds the question, its test cases and the
// student's code, and pins the judge to a strict JSON reply.
func buildGradingPrompt(question models.CodingQuestion, solution string) string {
	var b strings.Builder
	b.WriteString("You are an automated code evaluator. Evaluate the student's solution to the problem below.\n\n")
	b.WriteString("Problem: ")
	b.WriteString(question.Question)
	b.WriteString("\n")
	if question.Description != "" {
		b.WriteString("Description: ")
		b.WriteString(question.Description)
		b.WriteString("\n")
	}
	if len(question.TestCases) > 0 {
		b.WriteString("Test cases:\n")
		for _, tc := range question.TestCases {
			fmt.Fprintf(&b, "- input: %s, expected output: %s\n", tc.Input, tc.ExpectedOutput)
		}
	}
	b.WriteString("\nStudent solution:\n")
	b.WriteString(solution)
	b.WriteString("\n\nRespond with strict JSON only, no prose, matching exactly this shape:\n")
	b.WriteString(`{"score": <number 0 to 1>, "feedback": "<string>", "passesAllTests": <bool>, ` +
		`"performance": <int 0 to 100>, "readability": <int 0 to 100>, "correctness": <int 0 to 100>, ` +
		`"identifiedIssues": [{"type": "<string>", "severity": "<string>", "description": "<string>"}]}`)
	return b.String()
}

// parseVerdict decodes a judge reply, tolerating ```-fenced JSON and
// leading/trailing prose around the object.
func parseVerdict(raw string) (*judgeVerdict, error) {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	if !strings.HasPrefix(text, "{") {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("no JSON object in judge reply")
		}
		text = text[start : end+1]
	}

	var verdict judgeVerdict
	if err := json.Unmarshal([]byte(text), &verdict); err != nil {
		return nil, fmt.Errorf("failed to decode judge verdict: %w", err)
	}
	return &verdict, nil
}
