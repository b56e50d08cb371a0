package models

// Category is a student's chosen preparation track
type Category string

const (
	CategoryDreamPackage      Category = "Dream Package"
	CategorySuperDreamPackage Category = "Super Dream Package"
	CategoryHigherStudies     Category = "Higher Studies"
)

// Valid reports whether the category is one of the known tracks
func (c Category) Valid() bool {
	switch c {
	case CategoryDreamPackage, CategorySuperDreamPackage, CategoryHigherStudies:
		return true
	}
	return false
}

// CategoryInfo defines a track descriptor based on the 'categories' table
type CategoryInfo struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name" example:"Dream Package"`
	Description string `json:"description" db:"description"`
}
