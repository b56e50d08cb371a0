package models

import "time"

// CodeIssue is a single problem the evaluator identified in a solution
type CodeIssue struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// CodingFeedback is the evaluation result for one coding question,
// stored in the coding_feedback JSONB column. Score is the 0..1
// per-question credit; Performance/Readability/Correctness are 0..100.
type CodingFeedback struct {
	QuestionIndex    int         `json:"questionIndex"`
	Feedback         string      `json:"feedback"`
	Score            float64     `json:"score"`
	PassesAllTests   bool        `json:"passesAllTests"`
	Performance      int         `json:"performance"`
	Readability      int         `json:"readability"`
	Correctness      int         `json:"correctness"`
	IdentifiedIssues []CodeIssue `json:"identifiedIssues"`
}

// StudentSubmission defines a graded task submission based on the
// 'submissions' table. Rows are immutable after insert; (student, task)
// is unique.
type StudentSubmission struct {
	ID              int64            `json:"id" db:"id"`
	StudentID       int64            `json:"studentId" db:"student_id"`
	TaskID          int64            `json:"taskId" db:"task_id"`
	Week            int              `json:"week" db:"week"`
	Category        Category         `json:"category" db:"category"` // Track at submission time
	SubmittedAt     time.Time        `json:"submittedAt" db:"submitted_at"`
	MCQAnswers      []int            `json:"mcqAnswers" db:"mcq_answers"`             // JSONB
	CodingSolutions []string         `json:"codingSolutions" db:"coding_solutions"`   // JSONB
	MCQScore        int              `json:"mcqScore" db:"mcq_score"`
	CodingScore     int              `json:"codingScore" db:"coding_score"`
	TotalScore      int              `json:"totalScore" db:"total_score"`
	Evaluated       bool             `json:"evaluated" db:"evaluated"`
	CodingFeedback  []CodingFeedback `json:"codingFeedback" db:"coding_feedback"` // JSONB
}
