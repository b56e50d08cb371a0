package dto

import (
	"time"

	"github.com/campus2corporate/portal/internal/app/models"
)

// CreateExperienceRequest is an alumni placement story submission.
// The narrative fields carry a 10-character floor to keep entries
// substantive.
type CreateExperienceRequest struct {
	Company          string `json:"company" binding:"required"`
	Role             string `json:"role" binding:"required"`
	Package          string `json:"package"`
	YearOfPlacement  int    `json:"yearOfPlacement" binding:"required,min=1900"`
	Experience       string `json:"experience" binding:"required,min=10"`
	InterviewProcess string `json:"interviewProcess" binding:"required,min=10"`
	Tips             string `json:"tips" binding:"required,min=10"`
}

// ExperienceResponse is a stored placement experience
type ExperienceResponse struct {
	ID               int64     `json:"id"`
	AlumniName       string    `json:"alumniName"`
	Company          string    `json:"company"`
	Role             string    `json:"role"`
	Package          string    `json:"package,omitempty"`
	YearOfPlacement  int       `json:"yearOfPlacement"`
	Experience       string    `json:"experience"`
	InterviewProcess string    `json:"interviewProcess"`
	Tips             string    `json:"tips"`
	CreatedAt        time.Time `json:"createdAt"`
}

// NewExperienceResponse maps a stored experience row to its payload
func NewExperienceResponse(e *models.PlacementExperience) ExperienceResponse {
	return ExperienceResponse{
		ID:               e.ID,
		AlumniName:       e.AlumniName,
		Company:          e.Company,
		Role:             e.Role,
		Package:          e.Package,
		YearOfPlacement:  e.YearOfPlacement,
		Experience:       e.Experience,
		InterviewProcess: e.InterviewProcess,
		Tips:             e.Tips,
		CreatedAt:        e.CreatedAt,
	}
}
