package dto

import "github.com/campus2corporate/portal/internal/app/models"

// SelectCategoryRequest sets or changes a student's preparation track
type SelectCategoryRequest struct {
	Category      models.Category `json:"category" binding:"required"`
	ResetProgress bool            `json:"resetProgress"`
}

// MarkContentCompletedRequest marks a week's content as consumed.
// StudentID must match the authenticated session.
type MarkContentCompletedRequest struct {
	WeekNumber int   `json:"weekNumber" binding:"required,min=1"`
	StudentID  int64 `json:"studentId" binding:"required,min=1"`
}

// MarkResourceRequest sets or clears completion of a single resource
// within a week's content. Completed carries the target state, so it
// must not be collapsed by omitempty semantics at bind time.
type MarkResourceRequest struct {
	WeekNumber    int   `json:"weekNumber" binding:"required,min=1"`
	ResourceIndex int   `json:"resourceIndex" binding:"min=0"`
	StudentID     int64 `json:"studentId" binding:"required,min=1"`
	Completed     bool  `json:"completed"`
}

// ProgressResponse wraps the stored progress document
type ProgressResponse struct {
	Progress models.Progress `json:"progress"`
}
