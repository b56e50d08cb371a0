package models

import "time"

// MCQQuestion is a multiple-choice question inside a weekly task,
// stored in the mcqs JSONB column. CorrectAnswer indexes Options and
// must never reach API responses.
type MCQQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// TestCase is one input/output pair for a coding question
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
}

// CodingQuestion is a coding exercise inside a weekly task, stored in
// the coding_questions JSONB column. SampleSolution must never reach
// API responses.
type CodingQuestion struct {
	Question       string     `json:"question"`
	Description    string     `json:"description"`
	TestCases      []TestCase `json:"testCases"`
	SampleSolution string     `json:"sampleSolution,omitempty"`
}

// WeeklyTask defines a week's assessment based on the 'weekly_tasks'
// table. (category, week) is unique.
type WeeklyTask struct {
	ID              int64            `json:"id" db:"id"`
	Week            int              `json:"week" db:"week"`
	Category        Category         `json:"category" db:"category"`
	Title           string           `json:"title" db:"title"`
	Description     string           `json:"description" db:"description"`
	Deadline        time.Time        `json:"deadline" db:"deadline"`
	MCQs            []MCQQuestion    `json:"mcqs" db:"mcqs"`                         // JSONB
	CodingQuestions []CodingQuestion `json:"codingQuestions" db:"coding_questions"` // JSONB
}

// DeadlinePassed reports whether the task can no longer be submitted
func (t *WeeklyTask) DeadlinePassed(now time.Time) bool {
	return now.After(t.Deadline)
}
