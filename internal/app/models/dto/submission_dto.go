package dto

import "github.com/campus2corporate/portal/internal/app/models"

// SubmitTaskRequest is the single atomic submission payload for a
// weekly task. Category must match the student's stored category.
type SubmitTaskRequest struct {
	Week            int             `json:"week" binding:"required,min=1"`
	Category        models.Category `json:"category" binding:"required"`
	MCQAnswers      []int           `json:"mcqAnswers"`
	CodingSolutions []string        `json:"codingSolutions"`
}

// SubmissionResultResponse is the graded outcome returned after a
// submission (or when an existing submission is returned as-is).
type SubmissionResultResponse struct {
	SubmissionID   int64                   `json:"submissionId"`
	TaskID         int64                   `json:"taskId"`
	Week           int                     `json:"week"`
	MCQScore       int                     `json:"mcqScore"`
	CodingScore    int                     `json:"codingScore"`
	TotalScore     int                     `json:"totalScore"`
	Evaluated      bool                    `json:"evaluated"`
	CodingFeedback []models.CodingFeedback `json:"codingFeedback"`
	AlreadyExisted bool                    `json:"alreadyExisted,omitempty"`
}

// NewSubmissionResultResponse maps a stored submission to its result payload
func NewSubmissionResultResponse(s *models.StudentSubmission, alreadyExisted bool) *SubmissionResultResponse {
	return &SubmissionResultResponse{
		SubmissionID:   s.ID,
		TaskID:         s.TaskID,
		Week:           s.Week,
		MCQScore:       s.MCQScore,
		CodingScore:    s.CodingScore,
		TotalScore:     s.TotalScore,
		Evaluated:      s.Evaluated,
		CodingFeedback: s.CodingFeedback,
		AlreadyExisted: alreadyExisted,
	}
}
