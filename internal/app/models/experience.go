package models

import "time"

// PlacementExperience defines an alumni placement story based on the
// 'placement_experiences' table. AlumniName is a snapshot taken at
// creation time; rows are immutable after insert.
type PlacementExperience struct {
	ID               int64     `json:"id" db:"id"`
	AlumniID         int64     `json:"alumniId" db:"alumni_id"`
	AlumniName       string    `json:"alumniName" db:"alumni_name"`
	Company          string    `json:"company" db:"company"`
	Role             string    `json:"role" db:"role"`
	Package          string    `json:"package,omitempty" db:"package"`
	YearOfPlacement  int       `json:"yearOfPlacement" db:"year_of_placement"`
	Experience       string    `json:"experience" db:"experience"`
	InterviewProcess string    `json:"interviewProcess" db:"interview_process"`
	Tips             string    `json:"tips" db:"tips"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}
