package dto

import (
	"time"

	"github.com/campus2corporate/portal/internal/app/models"
)

// Submission states reported alongside a task
const (
	SubmissionStateNotSubmitted = "notSubmitted"
	SubmissionStateSubmitted    = "submitted"
	SubmissionStateExpired      = "expired"
)

// MCQView is an MCQ question with the correct answer stripped
type MCQView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// CodingQuestionView is a coding question with the sample solution stripped
type CodingQuestionView struct {
	Question    string            `json:"question"`
	Description string            `json:"description"`
	TestCases   []models.TestCase `json:"testCases"`
}

// TaskResponse is a weekly task as exposed to students; answer keys
// never appear here.
type TaskResponse struct {
	ID              int64                `json:"id"`
	Week            int                  `json:"week"`
	Category        models.Category      `json:"category"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	Deadline        time.Time            `json:"deadline"`
	MCQs            []MCQView            `json:"mcqs"`
	CodingQuestions []CodingQuestionView `json:"codingQuestions"`
}

// TaskDetailResponse adds the caller's submission state to a task
type TaskDetailResponse struct {
	TaskResponse
	SubmissionStatus string `json:"submissionStatus" example:"notSubmitted"`
}

// NewTaskResponse maps a task row to its sanitized view
func NewTaskResponse(t *models.WeeklyTask) TaskResponse {
	mcqs := make([]MCQView, len(t.MCQs))
	for i, q := range t.MCQs {
		mcqs[i] = MCQView{Question: q.Question, Options: q.Options}
	}
	coding := make([]CodingQuestionView, len(t.CodingQuestions))
	for i, q := range t.CodingQuestions {
		coding[i] = CodingQuestionView{
			Question:    q.Question,
			Description: q.Description,
			TestCases:   q.TestCases,
		}
	}
	return TaskResponse{
		ID:              t.ID,
		Week:            t.Week,
		Category:        t.Category,
		Title:           t.Title,
		Description:     t.Description,
		Deadline:        t.Deadline,
		MCQs:            mcqs,
		CodingQuestions: coding,
	}
}
