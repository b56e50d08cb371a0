package models

import (
	"time"
)

// RoleType defines the user role stored in the 'users' table
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleAlumni  RoleType = "alumni"
	RoleAdmin   RoleType = "admin"
)

// User defines the base user model based on the 'users' table.
// Student and Alumni embed it; the role column discriminates which
// role-specific column group is populated on the row.
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Name      string    `json:"name" db:"name" example:"Priya Sharma"`                    // User's display name
	Email     string    `json:"email" db:"email" example:"student@college.edu"`           // User's email address
	Password  string    `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	Role      RoleType  `json:"role" db:"role" example:"student"`                         // User's role (student, alumni or admin)
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
}

// Student defines the student variant of a user row
type Student struct {
	User
	RollNumber string    `json:"rollNumber" db:"roll_number" example:"22BCE1234"` // Institutional roll number
	Branch     string    `json:"branch" db:"branch" example:"Computer Science"`
	School     string    `json:"school" db:"school" example:"School of Computing"`
	CGPA       string    `json:"cgpa" db:"cgpa" example:"8.9"`
	Category   *Category `json:"category,omitempty" db:"category"` // Preparation track (nil until chosen)
	Progress   Progress  `json:"progress" db:"progress"`           // JSONB progress document
}

// Alumni defines the alumni variant of a user row
type Alumni struct {
	User
	Company        string `json:"company" db:"company" example:"Acme Corp"`
	Position       string `json:"position" db:"position" example:"Software Engineer"`
	GraduationYear int    `json:"graduationYear" db:"graduation_year" example:"2021"`
}
