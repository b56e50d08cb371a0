package dto

import "github.com/campus2corporate/portal/internal/app/models"

// UpdateProfileRequest represents a role-discriminated profile update.
// Only the caller's own role's field group may be populated; role,
// email, password, category and progress are never updatable here.
type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required"`

	// Student fields
	RollNumber string `json:"rollNumber,omitempty"`
	Branch     string `json:"branch,omitempty"`
	School     string `json:"school,omitempty"`
	CGPA       string `json:"cgpa,omitempty"`

	// Alumni fields
	Company        string `json:"company,omitempty"`
	Position       string `json:"position,omitempty"`
	GraduationYear int    `json:"graduationYear,omitempty"`
}

// HasStudentFields reports whether any student-only field is set
func (r *UpdateProfileRequest) HasStudentFields() bool {
	return r.RollNumber != "" || r.Branch != "" || r.School != "" || r.CGPA != ""
}

// HasAlumniFields reports whether any alumni-only field is set
func (r *UpdateProfileRequest) HasAlumniFields() bool {
	return r.Company != "" || r.Position != "" || r.GraduationYear != 0
}

// StudentProfileResponse is the profile payload for a student user
type StudentProfileResponse struct {
	ID         int64            `json:"id"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Role       string           `json:"role"`
	RollNumber string           `json:"rollNumber"`
	Branch     string           `json:"branch"`
	School     string           `json:"school"`
	CGPA       string           `json:"cgpa"`
	Category   *models.Category `json:"category,omitempty"`
	Progress   models.Progress  `json:"progress"`
}

// AlumniProfileResponse is the profile payload for an alumni user
type AlumniProfileResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Company        string `json:"company"`
	Position       string `json:"position"`
	GraduationYear int    `json:"graduationYear"`
}

// NewStudentProfileResponse maps a student row to its profile payload
func NewStudentProfileResponse(s *models.Student) *StudentProfileResponse {
	return &StudentProfileResponse{
		ID:         s.ID,
		Name:       s.Name,
		Email:      s.Email,
		Role:       string(s.Role),
		RollNumber: s.RollNumber,
		Branch:     s.Branch,
		School:     s.School,
		CGPA:       s.CGPA,
		Category:   s.Category,
		Progress:   s.Progress,
	}
}

// NewAlumniProfileResponse maps an alumni row to its profile payload
func NewAlumniProfileResponse(a *models.Alumni) *AlumniProfileResponse {
	return &AlumniProfileResponse{
		ID:             a.ID,
		Name:           a.Name,
		Email:          a.Email,
		Role:           string(a.Role),
		Company:        a.Company,
		Position:       a.Position,
		GraduationYear: a.GraduationYear,
	}
}
