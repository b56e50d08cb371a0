package models

// Resource types within weekly content
const (
	ResourceVideo = "video"
	ResourceNotes = "notes"
	ResourceLink  = "link"
)

// Resource is a single learning resource inside a week's content,
// stored in the resources JSONB column.
type Resource struct {
	Type  string `json:"type" example:"video"` // video, notes or link
	Title string `json:"title"`
	URL   string `json:"url"`
}

// WeeklyContent defines a week of learning material based on the
// 'weekly_content' table. (category, week) is unique.
type WeeklyContent struct {
	ID          int64      `json:"id" db:"id"`
	Week        int        `json:"week" db:"week"`
	Category    Category   `json:"category" db:"category"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Resources   []Resource `json:"resources" db:"resources"` // JSONB
}
