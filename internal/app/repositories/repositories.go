package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	TokenRepository      *TokenRepository
	CategoryRepository   *CategoryRepository
	ContentRepository    *ContentRepository
	TaskRepository       *TaskRepository
	SubmissionRepository *SubmissionRepository
	ExperienceRepository *ExperienceRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		TokenRepository:      NewTokenRepository(db),
		CategoryRepository:   NewCategoryRepository(db),
		ContentRepository:    NewContentRepository(db),
		TaskRepository:       NewTaskRepository(db),
		SubmissionRepository: NewSubmissionRepository(db),
		ExperienceRepository: NewExperienceRepository(db),
	}
}
